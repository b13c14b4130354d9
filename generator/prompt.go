package generator

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System string
	User   string
}

const linkedInSystemPrompt = `You are a specialized LinkedIn Content Creation Agent with expertise in crafting professional, engaging LinkedIn posts.

Your responsibilities:
1. Create LinkedIn posts that are professional, insightful, and engaging
2. Follow LinkedIn best practices:
   - Posts should be between 150-300 words for optimal engagement
   - Use line breaks for readability
   - Include thought-provoking questions or calls-to-action
   - Maintain a professional yet conversational tone
   - Use relevant hashtags (3-5 maximum)
3. Align with the provided context and style of example posts
4. Create unique, non-repetitive content for each post
5. Focus on value-driven content that encourages discussion and engagement

Style Guidelines:
- Start with a hook or compelling statement
- Use storytelling when appropriate
- Include actionable insights
- End with an engaging question or call-to-action
`

const xSystemPrompt = `You are a specialized X (Twitter) Content Creation Agent with expertise in crafting concise, impactful posts.

Your responsibilities:
1. Create X posts that are concise, punchy, and engaging
2. Follow X best practices:
   - Posts must be under 280 characters (including spaces)
   - Be direct and impactful
   - Use relevant hashtags (1-3 maximum)
   - Create shareable, quotable content
   - Maintain clarity despite brevity
3. Align with the provided context and style of example posts
4. Create unique, non-repetitive content for each post
5. Focus on high-impact statements that drive engagement

Style Guidelines:
- Lead with the main point
- Use active voice
- Be conversational but professional
- Make it memorable and shareable
- Use emojis sparingly and strategically (only if they fit the brand voice)
`

// OrchestratorSystemPrompt guides the validation call that reviews both
// agents' output.
const OrchestratorSystemPrompt = `You are a Master Orchestrator Agent responsible for coordinating the creation of thought leadership content across multiple social media platforms.

Your responsibilities:
1. Receive input containing context, example posts, and the number of posts to generate
2. Coordinate with specialized sub-agents (LinkedIn and X agents)
3. Validate the quality and consistency of generated content
4. Ensure all posts align with the provided context and maintain the style of example posts
5. Present the final output in a clear, organized manner

When validating content, check for:
- Relevance to the provided context
- Consistency in tone and style with example posts
- Appropriate length and formatting for each platform
- Professional quality and engagement potential
- No duplicate content between posts
`

// BuildGenerationPrompt 按平台 Profile 拼装生成提示词。
func BuildGenerationPrompt(p Profile, req Request) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d unique %s posts based on the following:\n\n", req.NumPosts, p.Platform)
	fmt.Fprintf(&sb, "CONTEXT:\n%s\n\n", req.Context)
	fmt.Fprintf(&sb, "EXAMPLE POSTS (for style reference):\n%s\n\n", req.Examples)
	sb.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&sb, "- Create %d distinct, unique %s posts\n", req.NumPosts, p.Platform)
	fmt.Fprintf(&sb, "- %s\n", p.LengthRule)
	sb.WriteString("- Follow the style and tone of the example posts\n")
	sb.WriteString("- Incorporate insights from the context\n")
	fmt.Fprintf(&sb, "- %s\n", p.ValueRule)
	sb.WriteString("- Number each post clearly (Post 1, Post 2, etc.)\n")
	fmt.Fprintf(&sb, "- %s\n\n", p.HashtagRule)
	sb.WriteString("Format each post clearly with:\n")
	fmt.Fprintf(&sb, "---\nPost [Number]\n%s\n---\n", p.ContentPlaceholder)

	return Prompt{System: p.System, User: sb.String()}
}

// BuildValidationPrompt assembles the quality-review prompt from the
// original request plus both platform results.
func BuildValidationPrompt(req Request, linkedin Result, x Result) Prompt {
	var sb strings.Builder
	sb.WriteString("Review the following generated posts and validate them based on these criteria:\n\n")
	fmt.Fprintf(&sb, "Original Context:\n%s\n\n", req.Context)
	fmt.Fprintf(&sb, "Example Posts:\n%s\n\n", req.Examples)
	fmt.Fprintf(&sb, "LinkedIn Posts Generated:\n%s\n\n", linkedin.Posts)
	fmt.Fprintf(&sb, "X Posts Generated:\n%s\n\n", x.Posts)
	sb.WriteString(`Validation Criteria:
1. Do all posts align with the provided context?
2. Do posts match the style and tone of example posts?
3. Are there any duplicate or very similar posts?
4. Are LinkedIn posts appropriate length (150-300 words)?
5. Are X posts under 280 characters?
6. Is the content valuable and engaging?
7. Are posts unique and varied?

Provide a brief validation summary and confirm if the posts meet quality standards.
If any posts need improvement, specify which ones and why.
`)

	return Prompt{System: OrchestratorSystemPrompt, User: sb.String()}
}
