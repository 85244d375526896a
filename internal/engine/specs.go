package engine

const draftSpec = `Respond with the brief only, in Markdown:

- A one-line title as a level-one heading
- Two to four short paragraphs
- An optional bulleted list of at most four concrete outcomes

Behavioral constraints:
- No preamble, sign-off, or commentary about the brief
- No code fences
- No placeholder text such as [Client Name]`

const rewriteSpec = `Respond with the complete revised brief only, in the same Markdown structure as the draft.

Behavioral constraints:
- No preamble, explanation, or list of changes
- No code fences
- Every listed violation must be resolved in the revised text`

const auditSpec = `Respond with a JSON object matching this exact structure:

{
  "violations": [
    {
      "type": "red_line",
      "index": 1,
      "evidence": "<offending text>",
      "suggested_fix": "<how to fix it>"
    }
  ]
}

Field constraints:
- type: "red_line" for a red-line rule, "standard_drift" for a guaranteed standard.
- index: The 1-based number of the rule or standard as listed in the prompt.
- evidence: The exact draft text that violates the rule.
- suggested_fix: A short instruction describing the correction.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Report each rule or standard at most once
- Return an empty violations array when the draft is compliant`

var specs = map[Stage]string{
	StageDraft:   draftSpec,
	StageRewrite: rewriteSpec,
}
