package db

import (
	"context"
)

const upsertProfile = `-- name: UpsertProfile :exec
insert into business_profile (
    business_id, business, category, website, logo, rating, qualification, total_reviews, collected_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?)
on conflict (business_id) do update set
    business = excluded.business,
    category = excluded.category,
    website = excluded.website,
    logo = excluded.logo,
    rating = excluded.rating,
    qualification = excluded.qualification,
    total_reviews = excluded.total_reviews,
    collected_at = excluded.collected_at
`

func (q *Queries) UpsertProfile(ctx context.Context, arg BusinessProfile) error {
	_, err := q.db.ExecContext(ctx, upsertProfile,
		arg.BusinessID,
		arg.Business,
		arg.Category,
		arg.Website,
		arg.Logo,
		arg.Rating,
		arg.Qualification,
		arg.TotalReviews,
		arg.CollectedAt,
	)
	return err
}

const getProfile = `-- name: GetProfile :one
select business_id, business, category, website, logo, rating, qualification, total_reviews, collected_at
from business_profile
where business_id = ?
`

func (q *Queries) GetProfile(ctx context.Context, businessID string) (BusinessProfile, error) {
	row := q.db.QueryRowContext(ctx, getProfile, businessID)
	var i BusinessProfile
	err := row.Scan(
		&i.BusinessID,
		&i.Business,
		&i.Category,
		&i.Website,
		&i.Logo,
		&i.Rating,
		&i.Qualification,
		&i.TotalReviews,
		&i.CollectedAt,
	)
	return i, err
}

const upsertReview = `-- name: UpsertReview :exec
insert into review (
    id, business_id, user, iso, avatar_url, verified, title, url, body, rating, time, answer, answer_time, collected_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
on conflict (id) do update set
    business_id = excluded.business_id,
    user = excluded.user,
    iso = excluded.iso,
    avatar_url = excluded.avatar_url,
    verified = excluded.verified,
    title = excluded.title,
    url = excluded.url,
    body = excluded.body,
    rating = excluded.rating,
    time = excluded.time,
    answer = excluded.answer,
    answer_time = excluded.answer_time,
    collected_at = excluded.collected_at
`

func (q *Queries) UpsertReview(ctx context.Context, arg Review) error {
	_, err := q.db.ExecContext(ctx, upsertReview,
		arg.ID,
		arg.BusinessID,
		arg.User,
		arg.Iso,
		arg.AvatarUrl,
		arg.Verified,
		arg.Title,
		arg.Url,
		arg.Body,
		arg.Rating,
		arg.Time,
		arg.Answer,
		arg.AnswerTime,
		arg.CollectedAt,
	)
	return err
}

const getBusinessReviews = `-- name: GetBusinessReviews :many
select id, business_id, user, iso, avatar_url, verified, title, url, body, rating, time, answer, answer_time, collected_at
from review
where business_id = ?
order by time desc, id
`

func (q *Queries) GetBusinessReviews(ctx context.Context, businessID string) ([]Review, error) {
	rows, err := q.db.QueryContext(ctx, getBusinessReviews, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Review
	for rows.Next() {
		var i Review
		if err := rows.Scan(
			&i.ID,
			&i.BusinessID,
			&i.User,
			&i.Iso,
			&i.AvatarUrl,
			&i.Verified,
			&i.Title,
			&i.Url,
			&i.Body,
			&i.Rating,
			&i.Time,
			&i.Answer,
			&i.AnswerTime,
			&i.CollectedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
