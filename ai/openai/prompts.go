package openai

import (
	"fmt"
	"strings"

	"github.com/zeddq/cywil-sub002/ai"
)

// SectionResponseSchema constrains a labeling response: one entry per
// submitted paragraph, in order.
const SectionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "paragraphs": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "para_no": {
            "type": "integer",
            "minimum": 1
          },
          "section": {
            "type": "string",
            "enum": ["header", "legal_question", "reasoning", "disposition", "body"]
          }
        },
        "required": ["para_no", "section"],
        "additionalProperties": false
      }
    }
  },
  "required": ["paragraphs"],
  "additionalProperties": false
}`

// EntityResponseSchema constrains an extraction response.
const EntityResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "text": {
            "type": "string",
            "minLength": 1
          },
          "label": {
            "type": "string",
            "enum": ["LAW_REF", "DOCKET", "PERSON", "ORG", "DATE"]
          }
        },
        "required": ["text", "label"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities"],
  "additionalProperties": false
}`

const sectionPromptTemplate = `You will receive the numbered paragraphs of a Polish Supreme Court ruling.
Assign each paragraph exactly one rhetorical section label and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Return exactly one entry per input paragraph, with para_no matching the input numbering.
- Section must be one of: %s.
- "header" is the opening block with the docket number, date, and panel composition. The first paragraph is almost always the header.
- "legal_question" is the legal issue referred to the court, usually introduced with "czy".
- "reasoning" is the court's own analysis, typically opened by a phrase like "zważył, co następuje".
- "disposition" is the operative decision, e.g. "oddala skargę kasacyjną", "uchyla zaskarżony wyrok".
- "body" is everything else: procedural history, parties' arguments, factual findings.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input:
1. Sygn. akt III CZP 1/20. Sąd Najwyższy w składzie: SSN Jan Kowalski.
2. Czy dopuszczalne jest zasiedzenie służebności przesyłu?
3. Sąd Najwyższy zważył, co następuje: przepis art. 292 k.c. stosuje się odpowiednio.
Output:
{
  "paragraphs": [
    {"para_no":1,"section":"header"},
    {"para_no":2,"section":"legal_question"},
    {"para_no":3,"section":"reasoning"}
  ]
}`

const entityPromptTemplate = `Extract the legal entities from the given paragraph of a Polish court ruling or statute and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Label must be one of: %s.
- LAW_REF: a statutory reference such as "art. 415 k.c." or "art. 39813 § 1 k.p.c.".
- DOCKET: a case file signature such as "III CZP 1/20" or "II CSK 544/14".
- PERSON: a person's name; include judges, parties, and counsel.
- ORG: a court, company, or institution name.
- DATE: a calendar date, in any written form.
- The "text" field must be the verbatim surface form copied from the input, character for character.
- Do not invent entities that are not present in the text.
- If no entities can be identified, return "entities": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Uchwała Sądu Najwyższego z dnia 12 marca 2020 r., III CZP 1/20, SSN Jan Kowalski."
Output:
{
  "entities": [
    {"text":"Sądu Najwyższego","label":"ORG"},
    {"text":"12 marca 2020 r.","label":"DATE"},
    {"text":"III CZP 1/20","label":"DOCKET"},
    {"text":"Jan Kowalski","label":"PERSON"}
  ]
}`

// BuildSectionPrompt creates the system prompt for paragraph labeling.
// It is exported so batch-mode request writers can reuse it verbatim.
func BuildSectionPrompt() string {
	return fmt.Sprintf(sectionPromptTemplate, SectionResponseSchema, strings.Join(ai.SectionLabels, ", "))
}

// BuildEntityPrompt creates the system prompt for entity extraction.
// It is exported so batch-mode request writers can reuse it verbatim.
func BuildEntityPrompt() string {
	return fmt.Sprintf(entityPromptTemplate, EntityResponseSchema, strings.Join(ai.EntityLabels, ", "))
}
