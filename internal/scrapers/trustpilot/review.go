package trustpilot

import (
	"fmt"
	"net/url"
	"strings"
)

const SITE_ORIGIN = "https://trustpilot.com"

var siteOrigin *url.URL

func init() {
	var err error
	siteOrigin, err = url.Parse(SITE_ORIGIN)
	if err != nil {
		panic(err)
	}
}

// every review is rendered as one of these
const selectReviewCard = "article"

const (
	selectConsumerName    = "[data-consumer-name-typography]"
	selectConsumerCountry = "[data-consumer-country-typography]"
	selectConsumerAvatar  = "[data-consumer-avatar-image]"
	selectConsumerProfile = "[data-consumer-profile-link]"

	userPathPrefix    = "/users/"
	avatarUrlTemplate = "https://user-images.trustpilot.com/%s/73x73.png"
)

func extractUser(card Element) string {
	return card.First(selectConsumerName).Text()
}

func extractIso(card Element) string {
	return card.First(selectConsumerCountry).Text()
}

// extractAvatarUrl only produces a url when the card renders an avatar image, the
// image itself is lazy loaded so the url is rebuilt from the consumer's profile link.
func extractAvatarUrl(card Element) string {
	if !card.First(selectConsumerAvatar).Exists() {
		return ""
	}
	href := card.First(selectConsumerProfile).Attr("href")
	if href == "" {
		return ""
	}
	userId := strings.TrimPrefix(href, userPathPrefix)
	return fmt.Sprintf(avatarUrlTemplate, userId)
}

// There is no data attribute that marks a verified reviewer, only the icon's class.
// This is the one selector expected to break first when the template changes.
const selectVerifiedIcon = "[class*='ic-verified-user-check']"

func extractVerified(card Element) bool {
	return card.First(selectVerifiedIcon).Exists()
}

const (
	selectTitleLink  = "[data-review-title-typography]"
	reviewPathPrefix = "/reviews/"
)

func extractTitle(card Element) string {
	return card.First(selectTitleLink).Text()
}

func extractId(card Element) string {
	anchor, ok := card.First(selectTitleLink).Anchor(siteOrigin)
	if !ok {
		return ""
	}
	// the escaped path keeps the segment as written in the href
	return strings.TrimPrefix(anchor.Url.EscapedPath(), reviewPathPrefix)
}

func extractUrl(card Element) string {
	anchor, ok := card.First(selectTitleLink).Anchor(siteOrigin)
	if !ok {
		return ""
	}
	return anchor.Url.String()
}

const selectReviewText = "[data-service-review-text-typography]"

func extractBody(card Element) string {
	return card.First(selectReviewText).Text()
}

const (
	selectRating  = "div[data-service-review-rating]"
	attrRating    = "data-service-review-rating"
	defaultRating = "0"
)

// extractRating keeps the rating as text, unlike every other field it defaults to "0".
func extractRating(card Element) string {
	rating := strings.TrimSpace(card.First(selectRating).Attr(attrRating))
	if rating == "" {
		return defaultRating
	}
	return rating
}

const (
	selectReviewTime = "[data-service-review-date-time-ago]"
	attrDatetime     = "datetime"
)

func extractTime(card Element) string {
	return card.First(selectReviewTime).Attr(attrDatetime)
}

const (
	selectReplyText = "[data-service-review-business-reply-text-typography]"
	selectReplyTime = "[data-service-reply-date-time-ago]"
)

func extractAnswer(card Element) string {
	return card.First(selectReplyText).Text()
}

func extractAnswerTime(card Element) string {
	return card.First(selectReplyTime).Attr(attrDatetime)
}

var errMalformedCard = fmt.Errorf("%w: review card has no review link", ErrParseDefect)

// assembleReview runs every extractor over a card. A card without a review link has no
// identity and is rejected, any other missing field is left empty.
func assembleReview(card Element) (Review, error) {
	id := extractId(card)
	if id == "" {
		return Review{}, errMalformedCard
	}

	return Review{
		Id:         id,
		User:       extractUser(card),
		Iso:        extractIso(card),
		AvatarUrl:  extractAvatarUrl(card),
		Verified:   extractVerified(card),
		Title:      extractTitle(card),
		Url:        extractUrl(card),
		Body:       extractBody(card),
		Rating:     extractRating(card),
		Time:       extractTime(card),
		Answer:     extractAnswer(card),
		AnswerTime: extractAnswerTime(card),
	}, nil
}
