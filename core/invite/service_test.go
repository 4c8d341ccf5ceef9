package invite

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/heliumhq/dashboard-api/core"
)

var codeFormat = regexp.MustCompile(`^NA[A-Z0-9]{5}$`)

type repoStub struct {
	codes map[string]Code
}

func newRepoStub(codes ...Code) *repoStub {
	r := &repoStub{codes: make(map[string]Code, len(codes))}
	for _, c := range codes {
		r.codes[c.ID] = c
	}
	return r
}

func (r *repoStub) CreateCodes(_ context.Context, codes []Code) error {
	for _, c := range codes {
		r.codes[c.ID] = c
	}
	return nil
}

func (r *repoStub) QueryAllCodes(context.Context) ([]Code, error) {
	codes := make([]Code, 0, len(r.codes))
	for _, c := range r.codes {
		codes = append(codes, c)
	}
	return codes, nil
}

func (r *repoStub) DeleteCodeByID(_ context.Context, id string) error {
	if _, ok := r.codes[id]; !ok {
		return ErrNotFound
	}
	delete(r.codes, id)
	return nil
}

func (r *repoStub) SetCodeArchived(_ context.Context, id string, archived bool) error {
	c, ok := r.codes[id]
	if !ok {
		return ErrNotFound
	}
	c.IsArchived = archived
	r.codes[id] = c
	return nil
}

func (r *repoStub) ArchiveUsedCodes(context.Context) (int, error) {
	var n int
	for id, c := range r.codes {
		if c.IsUsed && !c.IsArchived {
			c.IsArchived = true
			r.codes[id] = c
			n++
		}
	}
	return n, nil
}

func Test_newCodeString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := newCodeString()
		assert.NoError(t, err)
		assert.Regexp(t, codeFormat, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes must not repeat deterministically")
}

func Test_GenerateCodes_Validate(t *testing.T) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	t.Run("defaults", func(t *testing.T) {
		gc := GenerateCodes{Count: 5}
		assert.NoError(t, gc.Validate(validate, translator))
		assert.Equal(t, 1, gc.MaxUses)
		assert.Equal(t, 30, gc.ExpiresInDays)
	})

	t.Run("count required", func(t *testing.T) {
		gc := GenerateCodes{}
		assert.Error(t, gc.Validate(validate, translator))
	})

	t.Run("count capped", func(t *testing.T) {
		gc := GenerateCodes{Count: 101}
		assert.Error(t, gc.Validate(validate, translator))
	})

	t.Run("expiry capped at a year", func(t *testing.T) {
		gc := GenerateCodes{Count: 1, ExpiresInDays: 366}
		assert.Error(t, gc.Validate(validate, translator))
	})
}

func Test_Service_Generate(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	before := time.Now().UTC()
	codes, err := svc.Generate(context.Background(), GenerateCodes{Count: 3, MaxUses: 2, ExpiresInDays: 7})
	assert.NoError(t, err)
	assert.Len(t, codes, 3)
	assert.Len(t, repo.codes, 3)

	for _, c := range codes {
		assert.NotEmpty(t, c.ID)
		assert.Regexp(t, codeFormat, c.Code)
		assert.Equal(t, 2, c.MaxUses)
		assert.Equal(t, 0, c.CurrentUses)
		assert.False(t, c.IsUsed)
		if assert.True(t, c.ExpiresAt.Valid) {
			assert.WithinDuration(t, before.AddDate(0, 0, 7), c.ExpiresAt.Time, time.Minute)
		}
	}
}

func Test_Service_BulkDelete(t *testing.T) {
	repo := newRepoStub(Code{ID: "c1"}, Code{ID: "c2"})
	svc := NewService(repo)

	summary, err := svc.BulkDelete(context.Background(), []string{"c1", "ghost"})
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.FailureCount)
	assert.Len(t, repo.codes, 1)
}

func Test_Service_ArchiveUsed(t *testing.T) {
	repo := newRepoStub(
		Code{ID: "c1", IsUsed: true},
		Code{ID: "c2", IsUsed: true, IsArchived: true},
		Code{ID: "c3"},
	)
	svc := NewService(repo)

	n, err := svc.ArchiveUsed(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, repo.codes["c1"].IsArchived)
	assert.False(t, repo.codes["c3"].IsArchived)
}
