package bot

import (
	"fmt"
	"strings"
)

const welcomeMessage = `*Welcome to Shortly!*

Send me any link and I'll shorten it for you.
Use /help to see what I can do.`

const helpMessage = `Just send me a link starting with http:// or https://.

I'll reply with a short link you can share anywhere. Sending the same link
again returns the short link it already has.`

const (
	notURLMessage      = "That doesn't look like a link. Send me a URL starting with http:// or https://."
	serverErrorMessage = "The shortening service is unavailable right now. Please try again later."
)

// LooksLikeURL reports whether the message text is worth submitting to the
// shortening API. The API remains the authority on URL validity.
func LooksLikeURL(text string) bool {
	text = strings.TrimSpace(text)

	return (strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")) && len(text) > 10
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", `\_`,
		"*", `\*`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
	)

	return replacer.Replace(text)
}

func successMessage(res *ShortenResult) string {
	status := "This is a brand new short link."
	if res.Existing {
		status = "This link had been shortened before, so you got the existing short link."
	}

	return fmt.Sprintf(`*Link shortened!*

Short link:
`+"`%s`"+`

Original link:
%s

%s`, res.ShortURL, escapeMarkdown(res.OriginalURL), status)
}
