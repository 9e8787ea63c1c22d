package carrier

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginOK = `{"headerInfos":{"code":"0000","reason":"操作成功"},"responseData":{"resultCode":"0000","resultDesc":"成功","data":{"loginSuccessResult":{"token":"tok-1","userId":"u-9","provinceCode":"600101","cityCode":"8440100","userType":1}}}}`

const usageOK = `{"headerInfos":{"code":"0000"},"responseData":{"resultCode":"0000","data":{
	"balanceInfo":{"indexBalanceDataInfo":{"balance":"48.50"}},
	"voiceInfo":{"voiceDataInfo":{"used":"12","balance":88}},
	"flowInfo":{
		"commonFlow":{"used":1048576,"balance":"9437184","over":""},
		"specialAmount":{"used":"2048","balance":"0"}
	}
}}}`

const packagesOK = `{"headerInfos":{"code":"0000"},"responseData":{"resultCode":"0000","data":{"productOFFRatable":{"ratableResourcePackages":[
	{"title":"国内通用流量","productInfos":[{"title":"5G畅享包","leftTitle":"剩余","leftHighlight":8.5,"rightCommon":"GB"}]},
	{"title":"专用流量","productInfos":[{"title":"视频包","infiniteTitle":"已用","infiniteValue":"3","infiniteUnit":"GB"}]}
]}}}}`

type recordedRequest struct {
	Path     string
	Envelope requestEnvelope
}

func newTestServer(t *testing.T, responses map[string]string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var envelope requestEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		requests = append(requests, recordedRequest{Path: r.URL.Path, Envelope: envelope})

		body, ok := responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		API:        API{LoginBaseURL: server.URL, BaseURL: server.URL},
		HTTPClient: server.Client(),
		Now:        func() time.Time { return time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC) },
	}
}

func TestLoginReturnsSession(t *testing.T) {
	server, requests := newTestServer(t, map[string]string{loginPath: loginOK})
	client := newTestClient(server)

	session, err := client.Login(context.Background(), domain.Credential{ID: "17300000000", Secret: "123456"})
	require.NoError(t, err)

	assert.Equal(t, domain.AccountID("17300000000"), session.AccountID)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "600101", session.Attributes["provinceCode"])
	assert.Equal(t, "1", session.Attributes["userType"])
	assert.NotContains(t, session.Attributes, "token")

	require.Len(t, *requests, 1)
	sent := (*requests)[0].Envelope
	assert.Equal(t, "userLoginNormal", sent.HeaderInfos.Code)
	assert.Equal(t, "20260615090000", sent.HeaderInfos.Timestamp)
	assert.Equal(t, "17300000000", sent.Content.FieldData["phoneNum"])
	assert.Equal(t, "123456", sent.Content.FieldData["authentication"])
}

func TestLoginKeepsOnlyScalarAttributes(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		loginPath: `{"headerInfos":{"code":"0000"},"responseData":{"resultCode":"0000","data":{"loginSuccessResult":{"token":"tok-1","provinceCode":"600101","userType":1,"vip":true,"extra":{"nested":"value"},"tags":["a"],"empty":null}}}}`,
	})

	session, err := newTestClient(server).Login(context.Background(), domain.Credential{ID: "17300000000", Secret: "123456"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"provinceCode": "600101", "userType": "1", "vip": "true"}, session.Attributes)
}

func TestLoginRejected(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		loginPath: `{"headerInfos":{"code":"0000"},"responseData":{"resultCode":"8105","resultDesc":"密码错误"}}`,
	})

	_, err := newTestClient(server).Login(context.Background(), domain.Credential{ID: "17300000000", Secret: "000000"})
	require.ErrorIs(t, err, domain.ErrLoginRejected)
	assert.Contains(t, err.Error(), "密码错误")
}

func TestLoginHTTPFailureIsNotRejection(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{})

	_, err := newTestClient(server).Login(context.Background(), domain.Credential{ID: "17300000000", Secret: "000000"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrLoginRejected)
	assert.Contains(t, err.Error(), "status 404")
}

func TestLoginEncryptsSecretWithPublicKey(t *testing.T) {
	private, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&private.PublicKey)
	require.NoError(t, err)
	keyPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	server, requests := newTestServer(t, map[string]string{loginPath: loginOK})
	client, err := NewClient(API{LoginBaseURL: server.URL, BaseURL: server.URL}, time.Second, keyPEM)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), domain.Credential{ID: "17300000000", Secret: "123456"})
	require.NoError(t, err)

	cipher, err := base64.StdEncoding.DecodeString((*requests)[0].Envelope.Content.FieldData["authentication"])
	require.NoError(t, err)
	plain, err := rsa.DecryptPKCS1v15(rand.Reader, private, cipher)
	require.NoError(t, err)
	assert.Equal(t, "123456", string(plain))
}

func TestParsePublicKeyRejectsGarbage(t *testing.T) {
	_, err := ParsePublicKey("not a key")
	require.Error(t, err)
}

func TestFetchUsageDecodesMixedNumbers(t *testing.T) {
	server, requests := newTestServer(t, map[string]string{usagePath: usageOK})
	session := domain.Session{AccountID: "17300000000", Token: "tok-1", Attributes: map[string]string{"provinceCode": "600101"}}

	usage, err := newTestClient(server).FetchUsage(context.Background(), session)
	require.NoError(t, err)

	require.NotNil(t, usage.Balance)
	assert.Equal(t, "48.50", *usage.Balance)
	assert.Equal(t, &domain.Allowance{Used: 12, Balance: 88}, usage.Voice)
	assert.Equal(t, &domain.Allowance{Used: 1048576, Balance: 9437184}, usage.CommonData)
	assert.Equal(t, &domain.Allowance{Used: 2048}, usage.SpecialData)

	sent := (*requests)[0].Envelope
	assert.Equal(t, "tok-1", sent.HeaderInfos.Token)
	assert.Equal(t, "600101", sent.Content.FieldData["provinceCode"])
}

func TestFetchUsageSessionExpired(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		usagePath: `{"headerInfos":{"code":"X201","reason":"token失效"}}`,
	})

	_, err := newTestClient(server).FetchUsage(context.Background(), domain.Session{AccountID: "17300000000", Token: "stale"})
	require.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestFetchUsageMissingResponseData(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		usagePath: `{"headerInfos":{"code":"9999","reason":"系统繁忙"}}`,
	})

	_, err := newTestClient(server).FetchUsage(context.Background(), domain.Session{AccountID: "17300000000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "系统繁忙")
	assert.NotErrorIs(t, err, domain.ErrSessionExpired)
}

func TestFetchUsageMissingSectionsLeftNil(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		usagePath: `{"headerInfos":{"code":"0000"},"responseData":{"resultCode":"0000","data":{"flowInfo":{}}}}`,
	})

	usage, err := newTestClient(server).FetchUsage(context.Background(), domain.Session{AccountID: "17300000000"})
	require.NoError(t, err)
	assert.Nil(t, usage.Balance)
	assert.Nil(t, usage.Voice)
	assert.Nil(t, usage.CommonData)
}

func TestFetchUsageRejectsNonNumericAmount(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		usagePath: `{"headerInfos":{"code":"0000"},"responseData":{"resultCode":"0000","data":{"flowInfo":{"commonFlow":{"used":"lots"}}}}}`,
	})

	_, err := newTestClient(server).FetchUsage(context.Background(), domain.Session{AccountID: "17300000000"})
	require.ErrorIs(t, err, domain.ErrMalformedUsage)
}

func TestFetchUsageRejectsOutOfRangeAmount(t *testing.T) {
	for _, amount := range []string{`"1e30"`, `-1e30`, `"NaN"`, `"Inf"`} {
		amount := amount
		t.Run(amount, func(t *testing.T) {
			server, _ := newTestServer(t, map[string]string{
				usagePath: `{"headerInfos":{"code":"0000"},"responseData":{"resultCode":"0000","data":{"voiceInfo":{"voiceDataInfo":{"used":` + amount + `}}}}}`,
			})

			_, err := newTestClient(server).FetchUsage(context.Background(), domain.Session{AccountID: "17300000000"})
			require.ErrorIs(t, err, domain.ErrMalformedUsage)
		})
	}
}

func TestFetchAddOnPackages(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{fluxPackagePath: packagesOK})

	packages, err := newTestClient(server).FetchAddOnPackages(context.Background(), domain.Session{AccountID: "17300000000"})
	require.NoError(t, err)

	require.Len(t, packages, 2)
	assert.Equal(t, "国内通用流量", packages[0].Title)
	assert.Equal(t, domain.AddOnItem{Title: "5G畅享包", LeftTitle: "剩余", LeftHighlight: "8.5", RightCommon: "GB"}, packages[0].Items[0])
	assert.True(t, packages[1].Items[0].Unlimited())
}

func TestRequestTimesOutWithoutCallerDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(loginOK))
	}))
	t.Cleanup(server.Close)

	client := &Client{
		API:            API{LoginBaseURL: server.URL, BaseURL: server.URL},
		HTTPClient:     server.Client(),
		RequestTimeout: 20 * time.Millisecond,
	}

	_, err := client.Login(context.Background(), domain.Credential{ID: "17300000000", Secret: "123456"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}

func TestBuildAPIURLValidation(t *testing.T) {
	_, err := buildAPIURL("", loginPath)
	require.Error(t, err)
	_, err = buildAPIURL("ftp://example.com", loginPath)
	require.Error(t, err)

	endpoint, err := buildAPIURL("https://example.com:9031", loginPath)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:9031/login/client/userLoginNormal", endpoint)
}
