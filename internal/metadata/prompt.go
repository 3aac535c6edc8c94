package metadata

import (
	"fmt"
	"time"
)

const systemPrompt = "You are a careful MDX formatter. Ensure that the transcription text remains 100% unchanged and that all headings and dynamic front matter fields are generated based on a thorough analysis of the text. Do not clip, change, edit or remove ANY of the text that is provided. Generate the full MDX page including all of the text. No suggestions, give me the final MDX ready to be taken live."

const mdxPrompt = `You are an expert MDX formatter. Your task is to transform the provided transcription text (which must remain 100%% unchanged)
into a complete MDX page with logical headings and subheadings. In addition, generate a dynamic front matter section based on an analysis of the text.
Do not alter or remove any words from the transcription. Keep in mind that this is a Catholic homily that may include religious phrases, Ecclesiastical Latin, and references relevant to Traditional Catholics who follow the Tridentine Mass.

Requirements:
1. At the very top, insert a "Summary of Headings" table of contents with anchor links to each section.
2. Insert meaningful section headings and subheadings throughout the text to break it into logical, readable sections.
3. Include a final summary in 2-3 paragraphs that concisely recaps the text.
4. Generate dynamic front matter fields by analyzing the text. Each front matter value MUST be wrapped in quotes. For example, use:
---
title: "{PageTitle}"
description: "{MetaDescription}"
keywords: "{YoutubeTags}"
youtube_description: "{YoutubeDescription}"
youtube_hash: "{YoutubeHash}"
mdx_file: "src/mds/{PageTitleInKebabCase}.mdx"
category: "lectures"
slug: "/{PageTitleInKebabCase}"
date: "%[1]s"
modDate: "%[2]s"
author: "Fr. Gerrity"
media_type: "video"
media_path: "{YoutubeVideoId}"
media_title: "{PageTitle}"
media_alt: "{MediaAltText}"
media_aria: "{MediaAriaLabel}"
prev_topic_label: ""
prev_topic_path: ""
next_topic_label: ""
next_topic_path: ""
---
5. The dynamic fields to generate are:
   - PageTitle: A strong, SEO-friendly, and descriptive title that includes keywords relevant to the homily as well as words that connect with Traditional Catholicism. The Title must be limited to less than 100 characters.
   - MetaDescription: A good description for SEO. No more than 160 characters. Do not mention the priest's name.
   - YoutubeTags: A list of comma-separated keywords relevant to the text, always including keywords about the Latin Mass, Tridentine Mass, and Traditional Catholic.
   - YoutubeDescription: A detailed YouTube description in 3-4 paragraphs that must begin with the exact call-to-action text below:

     Please click on the link to Contribute to our project.
     https://www.mylatinmass.com/donate

     Thank you. All contributions are greatly appreciated.
     - - -
     ABOUT THIS VIDEO:

     Then follow with a rich description of the lecture.
   - YoutubeHash: A comma-separated list of hashtags related to the lecture.
   - PageTitleInKebabCase: The PageTitle in kebab-case.
   - YoutubeVideoId: If applicable; if not, leave blank.
   - MediaAltText: A suitable alternative text for the media.
   - MediaAriaLabel: A suitable ARIA label.
6. If relevant to the content, insert short Douay-Rheims Epistle and Gospel quotes (and only those two) from the Sunday prior to today's date (%[1]s); otherwise, omit them.
7. At the top of the document, output a main heading with the PageTitle, followed by a blockquote containing the offertory.

Below is the transcription text that must remain unaltered except for the inserted headings and structure:

%[3]s

Remember:
- Do not change any words from the transcription.
- Insert headings and structure solely to improve readability.
- Generate all dynamic front matter fields by analyzing the text.
- Produce the final MDX output as one complete document.`

// buildPrompt fills in the date fields and the transcript. The page is
// dated to the Sunday the homily was preached, taken as the most recent
// Sunday on or before now.
func buildPrompt(homilyText string, now time.Time) string {
	offset := int(now.Weekday())
	previousSunday := now.AddDate(0, 0, -offset)
	return fmt.Sprintf(mdxPrompt,
		previousSunday.Format("2006-01-02"),
		now.Format("2006-01-02"),
		homilyText,
	)
}
