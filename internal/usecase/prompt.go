package usecase

import (
	"fmt"

	"NewsWriter/internal/domain"
)

const articlePromptTemplate = `Write a professional news article about "%s" in the %s category.

Write this exactly as a human journalist would - natural, engaging, and informative.

IMPORTANT REQUIREMENTS:
- Start directly with the article content - NO introductions or explanations
- Write 800-1200 words with natural flow
- Use varied sentence structures and natural transitions
- Include relevant insights and real-world examples
- Write in active voice with engaging storytelling
- Make it sound like it was written by a human who cares about the topic
- Avoid any robotic or formulaic patterns

FORBIDDEN PHRASES (DO NOT USE):
- "in todays" or "in today's"
- "The Future of" at the beginning
- "Here are some key insights"
- "Certainly" or "Here's"
- "Let me" or "Allow me"
- "I'll create" or "I will create"
- Any AI-like patterns or explanations

Write the article directly in plain text format without any formatting or special characters.`

// BuildPrompt renders the article request sent to the generator.
func BuildPrompt(category domain.Category, headline string) string {
	return fmt.Sprintf(articlePromptTemplate, headline, category)
}
