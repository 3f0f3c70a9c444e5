package export

import (
	"context"
	"database/sql"
	"fmt"
	"trustpilot-collector/internal/components/assert"
	"trustpilot-collector/internal/components/chrono"
	"trustpilot-collector/internal/components/telemetry"
	"trustpilot-collector/internal/db"
	"trustpilot-collector/internal/scrapers/trustpilot"
	"trustpilot-collector/pkg/migrations"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("export")

const (
	report_export_reviews = "export.reviews"
	report_export_profile = "export.profile"
)

// Sink writes collection results to a sqlite database. Reviews are keyed by their id,
// writing a review that already exists overwrites it.
type Sink struct {
	db     *sql.DB
	makeTx db.MakeTx
	tel    telemetry.API
	time   chrono.TimeAPI
}

// Open opens (or creates) the sqlite database at path and makes sure the schema exists.
func Open(path string, tel telemetry.API) (Sink, error) {
	assert.NotNil(tel)

	database, err := migrations.OpenAndMigrateDB(db.Schema, path)
	if err != nil {
		return Sink{}, err
	}
	return Sink{
		db:     database,
		makeTx: db.NewMakeTx(database),
		tel:    telemetry.NewScopedAPI("export", tel),
		time:   chrono.StandardTime{},
	}, nil
}

func (s Sink) Close() error {
	return s.db.Close()
}

// Queries gives read access to what has been written so far.
func (s Sink) Queries() *db.Queries {
	return db.New(s.db)
}

func (s Sink) WriteReviews(ctx context.Context, businessId string, reviews []trustpilot.Review) error {
	ctx, span := tracer.Start(ctx, "WriteReviews")
	defer span.End()
	span.SetAttributes(
		attribute.String("business_id", businessId),
		attribute.Int("reviews", len(reviews)),
	)

	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken(report_export_reviews, err)
		return err
	}
	defer discard()

	collectedAt := s.time.Now().Unix()
	for _, r := range reviews {
		err = txqry.UpsertReview(ctx, db.Review{
			ID:          r.Id,
			BusinessID:  businessId,
			User:        r.User,
			Iso:         r.Iso,
			AvatarUrl:   r.AvatarUrl,
			Verified:    r.Verified,
			Title:       r.Title,
			Url:         r.Url,
			Body:        r.Body,
			Rating:      r.Rating,
			Time:        r.Time,
			Answer:      r.Answer,
			AnswerTime:  r.AnswerTime,
			CollectedAt: collectedAt,
		})
		if err != nil {
			err = fmt.Errorf("upsert review %s: %w", r.Id, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.tel.ReportBroken(report_export_reviews, err, businessId)
			return err
		}
	}

	err = commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken(report_export_reviews, err, businessId)
		return err
	}

	s.tel.ReportCount(report_export_reviews, int64(len(reviews)))
	return nil
}

func (s Sink) WriteProfile(ctx context.Context, businessId string, profile trustpilot.Profile) error {
	ctx, span := tracer.Start(ctx, "WriteProfile")
	defer span.End()
	span.SetAttributes(attribute.String("business_id", businessId))

	err := db.New(s.db).UpsertProfile(ctx, db.BusinessProfile{
		BusinessID:    businessId,
		Business:      profile.Business,
		Category:      profile.Category,
		Website:       profile.Website,
		Logo:          profile.Logo,
		Rating:        profile.Rating,
		Qualification: profile.Qualification,
		TotalReviews:  profile.TotalReviews,
		CollectedAt:   s.time.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken(report_export_profile, err, businessId)
		return err
	}
	return nil
}
