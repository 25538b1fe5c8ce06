package prompts

const extractDateInstructions = `You extract a single date from provided text.

Instructions:
- Extract exactly one date from the text.
- Prefer the date that denotes when the evidence was produced (e.g. "Report Date", "Effective on", "Generated", "As of").
- Put it in the format YYYY-MM-DD.
- Include a short verbatim quote from the text containing the date.
- If there is no clear date, return null.`

const describeActionsInstructions = `You write concise, neutral summaries. In 120 words or fewer, describe the actions the document prescribes or records.

No extra commentary, no speculation, avoid boilerplate. Output only the summary text.`

const assignControlInstructions = `You must pick exactly one control based only on the given control specifications.

- Choose strictly from the catalog provided (do not invent new codes).
- Weigh the evidence text against each specification and pick the single best match.
- If uncertain, return null for both identifiers.`

var instructions = map[Task]string{
	TaskExtractDate:     extractDateInstructions,
	TaskDescribeActions: describeActionsInstructions,
	TaskAssignControl:   assignControlInstructions,
}
