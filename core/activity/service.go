package activity

import (
	"context"
	"sort"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/profile"
)

type (
	Repository interface {
		QueryEvents(ctx context.Context) ([]Event, error)
	}

	Service struct {
		repo       Repository
		profileSvc *profile.Service
		nowFunc    func() time.Time // mockable
	}

	// UserRow is one user's line in the usage overview.
	UserRow struct {
		UserID         string    `json:"user_id"`
		UserName       string    `json:"user_name"`
		UserEmail      string    `json:"user_email"`
		UsageCount     int       `json:"usage_count"`
		LatestActivity null.Time `json:"latest_activity"`
		ActivityLevel  Bucket    `json:"activity_level"`
		DaysSinceLast  int       `json:"days_since_last_activity"`
	}

	// Overview is a single page of the usage report.
	Overview struct {
		Rows       []UserRow `json:"data"`
		TotalCount int       `json:"total_count"`
		TotalPages int       `json:"total_pages"`
		Page       int       `json:"page"`
		Limit      int       `json:"limit"`
	}

	// OverviewQuery selects, filters and pages the report. Page is 1-based.
	OverviewQuery struct {
		Page   int    `json:"page" validate:"gte=0"`
		Limit  int    `json:"limit" validate:"gte=0,lte=100"`
		Search string `json:"search_query"`
		Filter string `json:"activity_filter" validate:"omitempty,oneof=all active partial inactive"`
	}
)

func (q *OverviewQuery) Validate(validate *validator.Validate, _ ut.Translator) error {
	q.Search = core.CleanString(q.Search)
	q.Filter = core.CleanString(q.Filter, true /* lower */)
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
	if q.Filter == "" {
		q.Filter = "all"
	}
	return validate.Struct(q)
}

func NewService(repo Repository, profileSvc *profile.Service) *Service {
	return &Service{repo: repo, profileSvc: profileSvc, nowFunc: time.Now}
}

// Overview builds the per-user usage report: every profile appears exactly
// once, classified against "now"; profiles with no events are inactive.
func (svc *Service) Overview(ctx context.Context, q OverviewQuery) (Overview, error) {
	events, err := svc.repo.QueryEvents(ctx)
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying usage events")
	}
	profiles, err := svc.profileSvc.QueryAll(ctx)
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying profiles")
	}

	now := svc.nowFunc()
	summaries := Aggregate(events)

	rows := make([]UserRow, 0, len(profiles))
	for _, p := range profiles {
		summary := summaries[p.UserID] // zero Summary when absent
		row := UserRow{
			UserID:         p.UserID,
			UserName:       p.FullName,
			UserEmail:      p.Email,
			UsageCount:     summary.UsageCount,
			LatestActivity: summary.LatestActivity,
			ActivityLevel:  Classify(summary, now),
			DaysSinceLast:  DaysSince(summary, now),
		}
		if !matchesSearch(row, q.Search) {
			continue
		}
		if q.Filter != "all" && row.ActivityLevel != Bucket(q.Filter) {
			continue
		}
		rows = append(rows, row)
	}

	// most recently active first, idle users last, ties by name
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].LatestActivity, rows[j].LatestActivity
		switch {
		case a.Valid && b.Valid && !a.Time.Equal(b.Time):
			return a.Time.After(b.Time)
		case a.Valid != b.Valid:
			return a.Valid
		default:
			return rows[i].UserName < rows[j].UserName
		}
	})

	return Overview{
		Rows:       core.Page(rows, q.Page-1, q.Limit),
		TotalCount: len(rows),
		TotalPages: core.TotalPages(len(rows), q.Limit),
		Page:       q.Page,
		Limit:      q.Limit,
	}, nil
}

func matchesSearch(row UserRow, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(row.UserName), search) ||
		strings.Contains(strings.ToLower(row.UserEmail), search)
}
