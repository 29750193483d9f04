// Package llm talks to an OpenAI-compatible chat-completion endpoint and
// resolves the model's free-text answers against the allowed Notion select
// options.
package llm
