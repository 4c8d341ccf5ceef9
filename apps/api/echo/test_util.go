package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/activity"
	"github.com/heliumhq/dashboard-api/core/campaign"
	"github.com/heliumhq/dashboard-api/core/credit"
	"github.com/heliumhq/dashboard-api/core/invite"
	"github.com/heliumhq/dashboard-api/core/profile"
	"github.com/heliumhq/dashboard-api/core/waitlist"
	emailsvc "github.com/heliumhq/dashboard-api/services/email"
	dummydb "github.com/heliumhq/dashboard-api/storage/database/dummy"
)

const testAdminPassword = "s3cr3tpwd"

var (
	hashOnce      sync.Once
	testAdminHash string

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testEnv struct {
	server Server
	db     *dummydb.DB

	profileRepo profile.Repository
	profileSvc  *profile.Service
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	hashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("setup() failed: %v", err)
		}
		testAdminHash = string(hash)
	})
	core.Conf.Debug = false
	core.Conf.TestMode = true
	core.Conf.AdminEmail = "admin@test.io"
	core.Conf.AdminPasswordHash = testAdminHash
	emailsvc.ResetSentMessages()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	logger := &testLogger{t: t}
	mailSvc := emailsvc.NewConsoleServiceMock()

	profileRepo := dummydb.NewProfileRepository(db)
	profileSvc := profile.NewService(profileRepo)
	creditSvc := credit.NewService(dummydb.NewCreditRepository(db), profileSvc, mailSvc, logger)
	inviteSvc := invite.NewService(dummydb.NewInviteRepository(db))
	waitlistSvc := waitlist.NewService(dummydb.NewWaitlistRepository(db))
	campaignSvc := campaign.NewService(profileSvc, mailSvc)
	usageSvc := activity.NewService(dummydb.NewUsageRepository(db), profileSvc)

	server := NewServer(&Options{
		Addr:           ":0",
		DisableReqLogs: true,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		ProfileSvc:     profileSvc,
		CreditSvc:      creditSvc,
		InviteSvc:      inviteSvc,
		WaitlistSvc:    waitlistSvc,
		CampaignSvc:    campaignSvc,
		UsageSvc:       usageSvc,
	})

	return &testEnv{
		server:      server,
		db:          db,
		profileRepo: profileRepo,
		profileSvc:  profileSvc,
	}
}

type testLogger struct {
	t *testing.T
}

func (l *testLogger) Debug(msg string, _ ...interface{}) { l.t.Log(msg) }
func (l *testLogger) Info(msg string, _ ...interface{})  { l.t.Log(msg) }
func (l *testLogger) Warn(msg string, _ ...interface{})  { l.t.Log(msg) }
func (l *testLogger) Error(msg string, _ ...interface{}) { l.t.Log(msg) }
func (l *testLogger) Fatal(msg string, _ ...interface{}) { l.t.Log(msg) }

func (env *testEnv) request(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T) string {
	t.Helper()
	token, err := GenerateToken(GetAdminClaims(core.Conf.AdminEmail))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
