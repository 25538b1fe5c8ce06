package prompts

const extractDateSpec = `Respond with a JSON object matching this exact structure:

{
  "date": "<YYYY-MM-DD or null>",
  "quote": "<verbatim excerpt>",
  "reason": "<explanation>"
}

Field constraints:
- date: The single evidence date in YYYY-MM-DD format, or null when no
  clear date exists in the text.
- quote: A short verbatim excerpt from the text that contains the date.
  Empty string when date is null.
- reason: Brief explanation of why this date was chosen over any others
  present in the text.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Extract exactly one date, never a list
- The quote must appear character-for-character in the provided text`

const describeActionsSpec = `Respond with the summary text only.

Behavioral constraints:
- 120 words or fewer
- Describe only actions the document prescribes or records
- No headings, no lists, no markdown, no commentary about the task`

const assignControlSpec = `Respond with a JSON object matching this exact structure:

{
  "control_id": "<code or null>",
  "id": "<record id or null>",
  "rationale": "<explanation>"
}

Field constraints:
- control_id: The human-readable control code exactly as it appears in
  the catalog listing, or null when no control fits.
- id: The opaque record identifier from the catalog listing, or null
  when not provided for the chosen control.
- rationale: 30 words or fewer explaining the match.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Always choose exactly one control or null, never several
- Never invent a control code that is not in the catalog listing`

// assignControlRetrySpec is the stricter re-prompt used when the first
// response is not parseable JSON.
const assignControlRetrySpec = `Respond with JSON only. No prose, no code fences. Keys: control_id, id, rationale.`

var specs = map[Task]string{
	TaskExtractDate:     extractDateSpec,
	TaskDescribeActions: describeActionsSpec,
	TaskAssignControl:   assignControlSpec,
}

// RetrySpec returns the stricter response specification used for a second
// attempt after an unparseable response. Only assign-control defines one;
// other tasks reuse their primary spec.
func RetrySpec(task Task) (string, error) {
	if task == TaskAssignControl {
		return assignControlRetrySpec, nil
	}
	return Spec(task)
}
