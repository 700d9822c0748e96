// Package leak flags secret-looking text that survived sanitization.
//
// A template keeps ###-marked comments verbatim, so a credential pasted into
// such a comment would be committed. [Scan] runs regex heuristics covering
// common secret shapes (AWS keys, private key blocks, JWTs, bearer tokens,
// provider tokens for GitHub, Slack, Anthropic and OpenAI, and quoted
// password or token assignments) over each line and reports where they hit.
// Nothing is rewritten; callers decide how loudly to warn.
package leak
