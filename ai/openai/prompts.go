package openai

import (
	"fmt"
	"strings"
)

const classifyDocumentPromptTemplate = `You are a document classifier. Your job is to decide which knowledge collection a document belongs to.

Given:
1) A short excerpt from a document.
2) A list of existing collection names (if any).

You must reply with EXACTLY one of:
- One of the existing collection names exactly as written (if the document clearly fits that collection), OR
- A new collection name in snake_case ending with _collection (e.g. company_policy_collection, invoice_collection, product_details_collection) if the document fits a new category, OR
- The word %s if the document does not clearly fit any category and you cannot suggest a meaningful new one.

Reply with ONLY the collection name or %s. No explanation, no quotes, no punctuation after the name.`

const classifyQueryPromptTemplate = `You are a query router. Given a user search query or question and a list of existing knowledge collections, decide which single collection is most likely to contain the answer.

Rules:
- Reply with EXACTLY one existing collection name as written in the list (if the query clearly relates to that collection), OR
- Reply with the word %s if the query does not clearly relate to any of the listed collections.

Do NOT suggest new collection names. Do NOT explain. Reply with ONLY the collection name or %s.`

const extractFieldsPrompt = `You are a metadata extractor. Given a text excerpt and a list of metadata field names, extract values for those fields from the text. Use short, normalized values (e.g. city code 'NY' not 'New York', department name like 'HR' or 'Engineering'). If a value cannot be determined, omit the key. Reply with ONLY a valid JSON object, no other text, no trailing commas. Example: {"city": "NY", "department": "HR"}`

// buildClassifyDocumentPrompt creates the document classification system prompt.
func buildClassifyDocumentPrompt(sentinel string) string {
	return fmt.Sprintf(classifyDocumentPromptTemplate, sentinel, sentinel)
}

// buildClassifyQueryPrompt creates the query routing system prompt.
func buildClassifyQueryPrompt(sentinel string) string {
	return fmt.Sprintf(classifyQueryPromptTemplate, sentinel, sentinel)
}

// formatCollections renders the existing collection list for a prompt.
func formatCollections(existing []string) string {
	if len(existing) == 0 {
		return "(none)"
	}
	return strings.Join(existing, ", ")
}

// formatExtractRequest renders the user message for field extraction.
func formatExtractRequest(fields []string, hint, excerpt string) string {
	var b strings.Builder
	b.WriteString("Metadata fields to extract: ")
	b.WriteString(strings.Join(fields, ", "))
	if hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(hint)
	}
	b.WriteString("\n\nText excerpt:\n")
	b.WriteString(excerpt)
	return b.String()
}
