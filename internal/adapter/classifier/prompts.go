package classifier

import "fmt"

const extractionSystemPrompt = `You classify agenda items from local government meetings into civic topics.
Respond with a single JSON object and nothing else.`

const triageSystemPrompt = `You curate the topic catalog of a civic meeting tracker.
Respond with a single JSON object and nothing else.`

func buildExtractionPrompt(payloadJSON string) string {
	return fmt.Sprintf(`Tag each agenda item below with the civic topics it concerns.

Input:
%s

Output ONLY a JSON object matching this schema:
{
  "items": [
    {
      "id": <agenda item id>,
      "category": "<short category, e.g. Housing, Transportation, Administrative, Routine>",
      "tags": ["<topic name>", "..."],
      "confidence": <0.0-1.0>,
      "topic_worthy": <true|false>
    }
  ]
}

Rules:
- Prefer names from existing_topics when an item fits one
- Topic names are short noun phrases a resident would search for
- Use category Administrative or Routine for procedural items (roll call, minutes, adjournment)
- Set topic_worthy to false for items that do not concern a lasting civic issue
- Output ONLY the JSON, no markdown, no explanations`, payloadJSON)
}

func buildTriagePrompt(payloadJSON string) string {
	return fmt.Sprintf(`Review the proposed topics below. Decide which should be merged into another
topic, which should be approved and which should be blocked.

Input:
%s

Output ONLY a JSON object matching this schema:
{
  "merge_map": [
    {"canonical": "<topic name to keep>", "aliases": ["<topic name to fold in>"], "rationale": "<why>", "confidence": <0.0-1.0>}
  ],
  "approvals": [
    {"topic": "<topic name>", "rationale": "<why>", "confidence": <0.0-1.0>}
  ],
  "blocks": [
    {"topic": "<topic name>", "rationale": "<why>", "confidence": <0.0-1.0>}
  ]
}

Rules:
- Only merge topics listed together in similarity_candidates or obviously identical
- Block topics that match procedural_keywords or describe meeting procedure
- Approve topics that name a specific, lasting civic issue
- Leave a topic out of every list when unsure
- Output ONLY the JSON, no markdown, no explanations`, payloadJSON)
}
