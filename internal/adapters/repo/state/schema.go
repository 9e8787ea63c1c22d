package state

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
)

const (
	currentSchemaVersion  = 1
	schemaVersionKey      = "schema_version"
	pushConfigKey         = "push_config"
	loginInfoPrefix       = "login_info_"
	loginFailPrefix       = "login_fail_"
	legacyLoginFailPrefix = "loginFailTime_"
	summaryPrefix         = "summary_"
)

type loginInfoSchema struct {
	PhoneNum   string `toml:"phonenum" json:"phonenum"`
	Password   string `toml:"password" json:"password"`
	CreateTime string `toml:"createTime" json:"createTime"`
	Token      string `toml:"token" json:"token"`
}

var loginInfoFields = map[string]struct{}{
	"phonenum":   {},
	"password":   {},
	"createTime": {},
	"token":      {},
}

type summarySchema struct {
	BalanceCents      int64   `toml:"balance_cents" json:"balance_cents"`
	VoiceUsedMinutes  int64   `toml:"voice_used_minutes" json:"voice_used_minutes"`
	VoiceTotalMinutes int64   `toml:"voice_total_minutes" json:"voice_total_minutes"`
	CommonUsedMB      float64 `toml:"common_used_mb" json:"common_used_mb"`
	CommonTotalMB     float64 `toml:"common_total_mb" json:"common_total_mb"`
	OverageMB         float64 `toml:"overage_mb" json:"overage_mb"`
	SpecialUsedMB     float64 `toml:"special_used_mb" json:"special_used_mb"`
	SpecialTotalMB    float64 `toml:"special_total_mb" json:"special_total_mb"`
	CapturedAt        string  `toml:"captured_at" json:"captured_at"`
}

// fromDocument maps a decoded document onto State. Entries that cannot be
// interpreted are kept in State.Extra so they survive the next rewrite.
func fromDocument(c codec, doc map[string]any) (domain.State, error) {
	state := domain.NewState()

	if raw, ok := doc[schemaVersionKey]; ok {
		version, ok := toInt(raw)
		if !ok || version > currentSchemaVersion {
			return domain.State{}, fmt.Errorf("%w: %v (current %d)", domain.ErrUnsupportedStateVersion, raw, currentSchemaVersion)
		}
	}

	for key, value := range doc {
		switch {
		case key == schemaVersionKey:
		case key == pushConfigKey:
			cfg, ok := toPushConfig(value)
			if !ok {
				state.Extra[key] = value
				continue
			}
			state.PushConfig = cfg
		case hasAccountSuffix(key, loginInfoPrefix):
			session, err := decodeSession(c, domain.AccountID(strings.TrimPrefix(key, loginInfoPrefix)), value)
			if err != nil {
				state.Extra[key] = value
				continue
			}
			state.Sessions[session.AccountID] = session
		case hasAccountSuffix(key, loginFailPrefix):
			count, ok := toInt(value)
			if !ok {
				state.Extra[key] = value
				continue
			}
			state.LoginFailures[domain.AccountID(strings.TrimPrefix(key, loginFailPrefix))] = count
		case hasAccountSuffix(key, legacyLoginFailPrefix):
			id := strings.TrimPrefix(key, legacyLoginFailPrefix)
			if _, current := doc[loginFailPrefix+id]; current {
				continue
			}
			count, ok := toInt(value)
			if !ok {
				state.Extra[key] = value
				continue
			}
			state.LoginFailures[domain.AccountID(id)] = count
		case hasAccountSuffix(key, summaryPrefix):
			snapshot, err := decodeSnapshot(c, domain.AccountID(strings.TrimPrefix(key, summaryPrefix)), value)
			if err != nil {
				state.Extra[key] = value
				continue
			}
			state.Snapshots[snapshot.AccountID] = snapshot
		default:
			state.Extra[key] = value
		}
	}

	return state, nil
}

func toDocument(state domain.State) map[string]any {
	doc := make(map[string]any, len(state.Extra)+len(state.Sessions)+len(state.LoginFailures)+len(state.Snapshots)+2)
	for key, value := range state.Extra {
		doc[key] = value
	}

	doc[schemaVersionKey] = int64(currentSchemaVersion)

	if state.PushConfig != nil {
		table := make(map[string]any, len(state.PushConfig))
		for key, value := range state.PushConfig {
			table[key] = value
		}
		doc[pushConfigKey] = table
	}

	for id, session := range state.Sessions {
		doc[loginInfoPrefix+string(id)] = encodeSession(id, session)
	}
	for id, count := range state.LoginFailures {
		doc[loginFailPrefix+string(id)] = int64(count)
		delete(doc, legacyLoginFailPrefix+string(id))
	}
	for id, snapshot := range state.Snapshots {
		doc[summaryPrefix+string(id)] = toSummarySchema(snapshot)
	}

	return doc
}

func decodeSession(c codec, id domain.AccountID, raw any) (domain.Session, error) {
	table, ok := raw.(map[string]any)
	if !ok {
		return domain.Session{}, fmt.Errorf("login info for %s is not a table", id)
	}

	var info loginInfoSchema
	if err := decodeTable(c, table, &info); err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		AccountID:     id,
		Secret:        info.Password,
		Token:         info.Token,
		EstablishedAt: parseTime(info.CreateTime),
		Attributes:    map[string]string{},
	}
	for key, value := range table {
		if _, known := loginInfoFields[key]; known {
			continue
		}
		if text, ok := scalarString(value); ok {
			session.Attributes[key] = text
		}
	}

	return session, nil
}

func encodeSession(id domain.AccountID, session domain.Session) map[string]any {
	table := make(map[string]any, len(session.Attributes)+len(loginInfoFields))
	for key, value := range session.Attributes {
		table[key] = value
	}
	table["phonenum"] = string(id)
	table["password"] = session.Secret
	table["createTime"] = formatTime(session.EstablishedAt)
	table["token"] = session.Token
	return table
}

func decodeSnapshot(c codec, id domain.AccountID, raw any) (domain.UsageSnapshot, error) {
	table, ok := raw.(map[string]any)
	if !ok {
		return domain.UsageSnapshot{}, fmt.Errorf("summary for %s is not a table", id)
	}

	var summary summarySchema
	if err := decodeTable(c, table, &summary); err != nil {
		return domain.UsageSnapshot{}, err
	}

	return domain.UsageSnapshot{
		AccountID:          id,
		BalanceCents:       summary.BalanceCents,
		VoiceUsedMinutes:   summary.VoiceUsedMinutes,
		VoiceTotalMinutes:  summary.VoiceTotalMinutes,
		CommonDataUsedMB:   summary.CommonUsedMB,
		CommonDataTotalMB:  summary.CommonTotalMB,
		OverageMB:          summary.OverageMB,
		SpecialDataUsedMB:  summary.SpecialUsedMB,
		SpecialDataTotalMB: summary.SpecialTotalMB,
		CapturedAt:         parseTime(summary.CapturedAt),
	}, nil
}

func toSummarySchema(snapshot domain.UsageSnapshot) summarySchema {
	return summarySchema{
		BalanceCents:      snapshot.BalanceCents,
		VoiceUsedMinutes:  snapshot.VoiceUsedMinutes,
		VoiceTotalMinutes: snapshot.VoiceTotalMinutes,
		CommonUsedMB:      snapshot.CommonDataUsedMB,
		CommonTotalMB:     snapshot.CommonDataTotalMB,
		OverageMB:         snapshot.OverageMB,
		SpecialUsedMB:     snapshot.SpecialDataUsedMB,
		SpecialTotalMB:    snapshot.SpecialDataTotalMB,
		CapturedAt:        formatTime(snapshot.CapturedAt),
	}
}

// decodeTable re-encodes a generic table with the document codec and decodes
// it into a typed schema.
func decodeTable(c codec, table map[string]any, out any) error {
	data, err := c.marshal(table)
	if err != nil {
		return fmt.Errorf("encode %s table: %w", c.name, err)
	}
	if err := c.unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s table: %w", c.name, err)
	}
	return nil
}

func hasAccountSuffix(key, prefix string) bool {
	return strings.HasPrefix(key, prefix) && len(key) > len(prefix)
}

func toPushConfig(raw any) (domain.PushConfig, bool) {
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}

	cfg := make(domain.PushConfig, len(table))
	for key, value := range table {
		text, ok := scalarString(value)
		if !ok {
			return nil, false
		}
		cfg[key] = text
	}
	return cfg, true
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	if parsed, err := time.ParseInLocation(domain.TimestampLayout, raw, time.Local); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed
	}

	return time.Time{}
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.In(time.Local).Format(domain.TimestampLayout)
}
