package prompt

const languageBlock = `CRITICAL LANGUAGE REQUIREMENT:
- YOU MUST WRITE IN {{.LanguageName}} ONLY
- Forced output language: {{.LanguageName}}
- DO NOT USE ANY OTHER LANGUAGE
- This applies to ALL of the text, including every heading, paragraph and list item
- If you cannot write in {{.LanguageName}}, reply exactly "{{.Sentinel}}" and nothing else`

const styleBlock = `Tone: {{.Style.Tone}}
Writing style: {{.Style.WritingStyle}}
Language level: {{.Style.LanguageLevel}}
Target age: {{.Style.TargetAge}}
Target gender: {{.Style.TargetGender}}
Expertise level: {{.Style.ExpertiseLevel}}
Keywords per text: {{.Style.KeywordsPerText}}
Paragraph style: {{.Style.ParagraphStyle}}
Heading style: {{.Style.HeadingStyle}}`

const shortSimpleTemplate = `You are an expert e-commerce copywriter. Write a short product description.

` + languageBlock + `

STRUCTURE REQUIREMENTS:
- Write EXACTLY 3 short sentences in a single paragraph
- Wrap the whole text in one <p></p> tag and use no other tag
- Open with a benefit, an objection or a pain point of the buyer
- Infer the most likely target customer segment for this product and address it implicitly
- Return only the HTML fragment, with no preamble and no explanation

Product to describe: {{.ProductName}}

` + styleBlock + `

REMINDER: write in {{.LanguageName}} only.`

const shortEmojiTemplate = `You are an expert e-commerce copywriter. Write a short product description as a list of benefits.

` + languageBlock + `

STRUCTURE REQUIREMENTS:
- Write EXACTLY 4 lines
- Each line starts with one emoji followed by 2 to 3 words describing a benefit
- Wrap all four lines in a single <p></p> tag
- Separate the lines with <br> and use no other tag
- Example shape: <p>✨ Benefit one<br>🚀 Benefit two<br>💪 Benefit three<br>🎯 Benefit four</p>
- Return only the HTML fragment, with no preamble and no explanation

Product to describe: {{.ProductName}}

` + styleBlock + `

REMINDER: write in {{.LanguageName}} only.`

const longTemplate = `You are an expert e-commerce copywriter. Create an engaging product description in HTML that highlights two specific benefits of the product.

` + languageBlock + `

CRITICAL PARAGRAPH REQUIREMENT:
- Each paragraph MUST contain 3 to 4 well-built sentences
- Each paragraph MUST contain between 80 and 100 words
- This is a strict requirement for search engine optimization
- Count your words and sentences carefully before answering

Guidelines:
1. Structure:
   - Two <h2> headings: descriptive headings focused on one specific benefit each (6-10 words)
   - Two <p> paragraphs: EXACTLY 3-4 sentences each, 80-100 words, developing each benefit
   - Order: <h2>, <p>, <h2>, <p>
   - Use only <h2> and <p> tags
2. Writing:
   - Each heading states the main benefit and how or why it matters
   - Each sentence expresses one clear idea
   - Return only the HTML, with no preamble and no explanation

Product to describe: {{.ProductName}}

` + styleBlock + `

REMINDER: write in {{.LanguageName}} only.`
