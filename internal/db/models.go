package db

type BusinessProfile struct {
	BusinessID    string
	Business      string
	Category      string
	Website       string
	Logo          string
	Rating        string
	Qualification string
	TotalReviews  string
	CollectedAt   int64
}

type Review struct {
	ID          string
	BusinessID  string
	User        string
	Iso         string
	AvatarUrl   string
	Verified    bool
	Title       string
	Url         string
	Body        string
	Rating      string
	Time        string
	Answer      string
	AnswerTime  string
	CollectedAt int64
}
