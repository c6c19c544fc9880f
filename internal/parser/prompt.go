package parser

import "fmt"

// BuildPrompt composes the extraction instruction for a block of OCR text.
// The template mandates JSON-only output, arrays for multi-valued fields even
// when a single value was found, null for missing optionals, empty strings
// for missing required fields, and consolidation of leftovers into notes.
func BuildPrompt(text string) string {
	return fmt.Sprintf(`You are an expert information extractor specializing in business cards. Your task is to extract fields from the given text and return ONLY a valid JSON object.

### DATA FIELDS
- "first_name" (string, required): The person's first name.
- "middle_name" (string, optional): The person's middle name or initial.
- "last_name" (string, required): The person's last name.
- "company_name" (string, required): The company or organization name.
- "position" (string, required): The job title or position.
- "department" (string, optional): The department or division.
- "mobile" (array of strings, optional): A list of all mobile/cell phone numbers.
- "telephone" (array of strings, optional): A list of all office/work phone numbers.
- "email" (array of strings, optional): A list of all email addresses.
- "website" (array of strings, optional): A list of all company website URLs.
- "address" (string, optional): The full business address.
- "extension" (string, optional): The phone extension number.
- "notes" (string, optional): Any additional information that doesn't fit other fields (e.g., fax numbers, certifications, slogans).

### IMPORTANT INSTRUCTIONS
1. JSON Only: Your entire output must be a single, valid JSON object, with no explanatory text or markdown formatting around it.
2. Handle Multiple Values: If you find more than one value for "mobile", "telephone", "email", or "website", you MUST return them as a JSON array of strings. If you find only one, return it as an array with a single string.
3. Handle Missing Values: For optional fields that are not found, use null. For required fields that are not found, use an empty string "".
4. Identify Websites: Correctly identify any website, such as "www.example.com" or "example.com", and place it in the "website" field.
5. Consolidate Notes: Combine all other miscellaneous text into the single "notes" field.

---

### BUSINESS CARD TEXT TO PROCESS:
%s

### JSON OUTPUT:
`, text)
}
