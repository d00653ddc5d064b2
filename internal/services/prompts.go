package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"avatarforge/internal/models/db_models"
)

const avatarSystemPrompt = "You are an expert at creating detailed avatar profiles for target audiences. " +
	"You provide specific, realistic details and emotionally resonant content."

// buildAvatarPrompt asks for the full twelve-section profile as one JSON
// object in the canonical section shape.
func buildAvatarPrompt(targetAudience, helpDescription string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed avatar profile representing someone from %s who needs help with %s.\n\n",
		targetAudience, helpDescription)
	b.WriteString(`For example, if the target audience is "Thai moms" and they need help with "learning English to teach their children", create an avatar of a Thai mother who wants to learn English to help her children succeed.

Return a JSON object with detailed, specific content about this person (NO placeholders, NO brackets):

{
  "details": {
    "name": "A realistic name for this demographic",
    "age": "Typical age for this situation",
    "gender": "Gender based on target audience",
    "location": "Specific location where they live",
    "career": "Their current occupation or role"
  },
  "story": {"headline": "Their Background", "points": ["...", "...", "..."]},
  "currentWants": {"headline": "Immediate Needs", "points": ["...", "...", "..."]},
  "painPoints": {"headline": "Current Struggles", "points": ["...", "...", "..."]},
  "desires": {"headline": "Long-term Dreams", "points": ["...", "...", "..."]},
  "offerResults": {"headline": "What They Hope To Gain", "points": ["...", "...", "..."]},
  "biggestProblem": {"headline": "Major Obstacles", "points": ["...", "...", "..."]},
  "humiliation": {"headline": "Personal Fears", "points": ["...", "...", "..."]},
  "frustrations": {"headline": "Daily Irritations", "points": ["...", "...", "..."]},
  "complaints": {"headline": "Common Grievances", "points": ["...", "...", "..."]},
  "costOfNotBuying": {"headline": "Consequences of Inaction", "points": ["...", "...", "..."]},
  "biggestWant": {"headline": "Ultimate Goals", "points": ["...", "...", "..."]}
}

Important:
1. This avatar represents someone FROM the target audience who NEEDS help
2. Make all content specific to the target audience and their situation
3. Use realistic details that match their demographic and culture
4. Focus on their perspective, challenges, and desires
5. Make each point detailed and emotionally resonant
6. Return ONLY the JSON object, with no additional text`)

	return b.String()
}

// buildSectionPrompt asks for three fresh points for one section, given the
// full existing profile for context. biggest-problem keeps its historical
// financial/emotional split.
func buildSectionPrompt(section string, avatar *db_models.Avatar) string {
	var b strings.Builder

	details := avatar.DetailsMap()
	career := details["career"]
	if career == "" {
		career = "professional"
	}
	profile, _ := json.MarshalIndent(avatar, "", "  ")

	fmt.Fprintf(&b, "Given the following avatar data for a %s:\n\n%s\n\n", career, profile)

	if section == "biggest-problem" {
		fmt.Fprintf(&b, `Generate 3 new detailed problems (a mix of financial and emotional) for the %q section. The response should be in the following JSON format:

[
  {"type": "financial", "problem": "Detailed financial problem"},
  {"type": "emotional", "problem": "Detailed emotional problem"},
  {"type": "financial", "problem": "Another detailed financial problem"}
]

Ensure the generated problems are relevant, detailed, and specific to the avatar's situation.`, section)
	} else {
		fmt.Fprintf(&b, `Generate 3 new detailed main points with up to 3 subpoints each for the %q section. The response should be in the following JSON format:

[
  {"main": "Main point 1", "subPoints": ["Subpoint 1", "Subpoint 2", "Subpoint 3"]},
  {"main": "Main point 2", "subPoints": ["Subpoint 1", "Subpoint 2"]},
  {"main": "Main point 3", "subPoints": ["Subpoint 1", "Subpoint 2", "Subpoint 3"]}
]

Ensure the generated points are relevant, detailed, and specific to the avatar's situation and the %s section.`, section, section)
	}

	b.WriteString(" Provide ONLY the JSON array as the response, with no additional text.")
	return b.String()
}

// buildImagePrompt derives the headshot prompt from the parsed details.
func buildImagePrompt(details map[string]string, keyword string) string {
	name := details["name"]
	if name == "" {
		name = "the person"
	}
	career := details["career"]
	if career == "" {
		career = details["profession"]
	}
	if career == "" {
		career = "Professional"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a professional, photorealistic headshot portrait of a %s %s professional named %s.\n\n",
		details["gender"], details["age"], name)
	b.WriteString(`Physical characteristics:
- Well-groomed and polished look
- Wearing professional business attire
- Natural, confident expression
- High-quality studio lighting
- Clean background

`)
	fmt.Fprintf(&b, "Career context: %s\n", career)
	if keyword != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", keyword)
	}
	b.WriteString(`
Style notes:
- Professional LinkedIn-style headshot
- Sharp focus on face
- Soft, natural lighting
- Neutral background
- High-quality, realistic photo
- No artificial or cartoonish effects

Important: Create a PHOTOREALISTIC image, not illustrated or artistic. The image should look like a real professional headshot photograph.`)

	return b.String()
}
