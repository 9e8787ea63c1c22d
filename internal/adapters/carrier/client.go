package carrier

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/bnema/telecom-usage-monitor/internal/logger"
	"go.uber.org/zap"
)

const (
	maxResponseBytes = 1 << 20
	clientType       = "#11.3.0#channel50#iPhone 14 Pro#"
	source           = "110003"
	sourcePassword   = "Sid98s"
	loginPath        = "/login/client/userLoginNormal"
	usagePath        = "/query/qryImportantData"
	fluxPackagePath  = "/query/userFluxPackage"
)

type API struct {
	LoginBaseURL string
	BaseURL      string
}

// Client talks to the carrier's mobile app endpoints.
type Client struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	// PublicKey encrypts the login secret when set; otherwise it is sent as is.
	PublicKey *rsa.PublicKey
	Now       func() time.Time
}

// NewClient builds a client; publicKeyPEM may be empty.
func NewClient(api API, timeout time.Duration, publicKeyPEM string) (*Client, error) {
	client := &Client{
		API:            api,
		HTTPClient:     &http.Client{Timeout: timeout},
		RequestTimeout: timeout,
	}
	if publicKeyPEM != "" {
		key, err := ParsePublicKey(publicKeyPEM)
		if err != nil {
			return nil, err
		}
		client.PublicKey = key
	}
	return client, nil
}

// ParsePublicKey accepts a PEM block or its bare base64 body.
func ParsePublicKey(raw string) (*rsa.PublicKey, error) {
	var der []byte
	if block, _ := pem.Decode([]byte(raw)); block != nil {
		der = block.Bytes
	} else {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("decode rsa public key: %w", err)
		}
		der = decoded
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse rsa public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not rsa")
	}
	return key, nil
}

func (c *Client) Login(ctx context.Context, credential domain.Credential) (domain.Session, error) {
	secret, err := c.encrypt(credential.Secret)
	if err != nil {
		return domain.Session{}, err
	}

	fields := map[string]string{
		"accountType":    "",
		"authentication": secret,
		"deviceUid":      "",
		"isChinatelecom": "0",
		"loginType":      "4",
		"phoneNum":       string(credential.ID),
		"systemVersion":  "15.4.0",
	}

	var envelope responseEnvelope
	if err := c.post(ctx, c.API.LoginBaseURL, loginPath, "userLoginNormal", "", credential.ID, fields, &envelope); err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if envelope.ResponseData == nil || envelope.ResponseData.ResultCode != resultCodeOK {
		return domain.Session{}, fmt.Errorf("%w: %s", domain.ErrLoginRejected, rejectionReason(envelope))
	}

	var data loginData
	if err := json.Unmarshal(envelope.ResponseData.Data, &data); err != nil {
		return domain.Session{}, fmt.Errorf("decode login result: %w", err)
	}
	token, _ := data.LoginSuccessResult["token"].(string)
	if token == "" {
		return domain.Session{}, fmt.Errorf("%w: login result missing token", domain.ErrLoginRejected)
	}

	attributes := make(map[string]string, len(data.LoginSuccessResult))
	for key, value := range data.LoginSuccessResult {
		if key == "token" || value == nil {
			continue
		}
		if text, ok := attributeText(value); ok {
			attributes[key] = text
		}
	}

	return domain.Session{AccountID: credential.ID, Token: token, Attributes: attributes}, nil
}

func (c *Client) FetchUsage(ctx context.Context, session domain.Session) (domain.UsageData, error) {
	fields := map[string]string{
		"provinceCode": session.Attributes["provinceCode"],
		"cityCode":     session.Attributes["cityCode"],
		"shopId":       "20002",
		"isIntl":       "2",
		"account":      string(session.AccountID),
	}

	var envelope responseEnvelope
	if err := c.post(ctx, c.API.BaseURL, usagePath, "qryImportantData", session.Token, session.AccountID, fields, &envelope); err != nil {
		return domain.UsageData{}, fmt.Errorf("query usage: %w", err)
	}
	if envelope.HeaderInfos.Code == headerCodeSessionGone {
		return domain.UsageData{}, domain.ErrSessionExpired
	}
	if envelope.ResponseData == nil {
		return domain.UsageData{}, fmt.Errorf("query usage: %s", rejectionReason(envelope))
	}

	var data importantData
	if err := json.Unmarshal(envelope.ResponseData.Data, &data); err != nil {
		return domain.UsageData{}, fmt.Errorf("%w: %v", domain.ErrMalformedUsage, err)
	}

	return data.toUsage(), nil
}

func (c *Client) FetchAddOnPackages(ctx context.Context, session domain.Session) ([]domain.AddOnPackage, error) {
	fields := map[string]string{
		"queryFlag":    "0",
		"accessAuth":   "1",
		"account":      string(session.AccountID),
		"provinceCode": session.Attributes["provinceCode"],
	}

	var envelope responseEnvelope
	if err := c.post(ctx, c.API.BaseURL, fluxPackagePath, "userFluxPackage", session.Token, session.AccountID, fields, &envelope); err != nil {
		return nil, fmt.Errorf("query add-on packages: %w", err)
	}
	if envelope.HeaderInfos.Code == headerCodeSessionGone {
		return nil, domain.ErrSessionExpired
	}
	if envelope.ResponseData == nil {
		return nil, fmt.Errorf("query add-on packages: %s", rejectionReason(envelope))
	}

	var data fluxPackageData
	if err := json.Unmarshal(envelope.ResponseData.Data, &data); err != nil {
		return nil, fmt.Errorf("decode add-on packages: %w", err)
	}

	packages := make([]domain.AddOnPackage, 0, len(data.ProductOFFRatable.RatableResourcePackages))
	for _, pkg := range data.ProductOFFRatable.RatableResourcePackages {
		items := make([]domain.AddOnItem, 0, len(pkg.ProductInfos))
		for _, info := range pkg.ProductInfos {
			items = append(items, domain.AddOnItem{
				Title:         string(info.Title),
				InfiniteTitle: string(info.InfiniteTitle),
				InfiniteValue: string(info.InfiniteValue),
				InfiniteUnit:  string(info.InfiniteUnit),
				LeftTitle:     string(info.LeftTitle),
				LeftHighlight: string(info.LeftHighlight),
				RightCommon:   string(info.RightCommon),
			})
		}
		packages = append(packages, domain.AddOnPackage{Title: pkg.Title, Items: items})
	}

	return packages, nil
}

func (c *Client) post(ctx context.Context, baseURL, path, code, token string, account domain.AccountID, fields map[string]string, out *responseEnvelope) error {
	endpoint, err := buildAPIURL(baseURL, path)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(requestEnvelope{
		HeaderInfos: requestHeader{
			Code:           code,
			Timestamp:      c.now().Format("20060102150405"),
			ClientType:     clientType,
			Source:         source,
			SourcePassword: sourcePassword,
			Token:          token,
			UserLoginName:  string(account),
		},
		Content: requestContent{Attach: "test", FieldData: fields},
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "iPhone 14 Pro/9.6.0")

	logger.FromContext(ctx).Debug("carrier request", zap.String("endpoint", path), zap.String("account", string(account)))
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) encrypt(secret string) (string, error) {
	if c.PublicKey == nil {
		return secret, nil
	}
	cipher, err := rsa.EncryptPKCS1v15(rand.Reader, c.PublicKey, []byte(secret))
	if err != nil {
		return "", fmt.Errorf("encrypt secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(cipher), nil
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func (d importantData) toUsage() domain.UsageData {
	var usage domain.UsageData
	if d.BalanceInfo != nil && d.BalanceInfo.IndexBalanceDataInfo != nil && d.BalanceInfo.IndexBalanceDataInfo.Balance != nil {
		balance := string(*d.BalanceInfo.IndexBalanceDataInfo.Balance)
		usage.Balance = &balance
	}
	if d.VoiceInfo != nil && d.VoiceInfo.VoiceDataInfo != nil {
		usage.Voice = d.VoiceInfo.VoiceDataInfo.allowance()
	}
	if d.FlowInfo != nil {
		if d.FlowInfo.CommonFlow != nil {
			usage.CommonData = d.FlowInfo.CommonFlow.allowance()
		}
		if d.FlowInfo.SpecialAmount != nil {
			usage.SpecialData = d.FlowInfo.SpecialAmount.allowance()
		}
	}
	return usage
}

func (a amount) allowance() *domain.Allowance {
	return &domain.Allowance{Used: int64(a.Used), Balance: int64(a.Balance), Over: int64(a.Over)}
}

// attributeText keeps scalar login fields; nested objects and arrays are
// dropped since the state document stores attributes as flat strings.
func attributeText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func rejectionReason(envelope responseEnvelope) string {
	if envelope.ResponseData != nil && envelope.ResponseData.ResultDesc != "" {
		return envelope.ResponseData.ResultDesc
	}
	if envelope.HeaderInfos.Reason != "" {
		return envelope.HeaderInfos.Reason
	}
	if envelope.HeaderInfos.Code != "" {
		return "code " + envelope.HeaderInfos.Code
	}
	return "empty response"
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
