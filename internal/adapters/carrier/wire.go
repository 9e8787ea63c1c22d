package carrier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	resultCodeOK          = "0000"
	headerCodeSessionGone = "X201"
)

type requestEnvelope struct {
	HeaderInfos requestHeader  `json:"headerInfos"`
	Content     requestContent `json:"content"`
}

type requestHeader struct {
	Code           string `json:"code"`
	Timestamp      string `json:"timestamp"`
	ClientType     string `json:"clientType"`
	Source         string `json:"source"`
	SourcePassword string `json:"sourcePassword"`
	Token          string `json:"token"`
	UserLoginName  string `json:"userLoginName"`
}

type requestContent struct {
	Attach    string            `json:"attach"`
	FieldData map[string]string `json:"fieldData"`
}

type responseEnvelope struct {
	HeaderInfos struct {
		Code   string `json:"code"`
		Reason string `json:"reason"`
	} `json:"headerInfos"`
	ResponseData *struct {
		ResultCode string          `json:"resultCode"`
		ResultDesc string          `json:"resultDesc"`
		Data       json.RawMessage `json:"data"`
	} `json:"responseData"`
}

type loginData struct {
	LoginSuccessResult map[string]any `json:"loginSuccessResult"`
}

type importantData struct {
	BalanceInfo *struct {
		IndexBalanceDataInfo *struct {
			Balance *flexString `json:"balance"`
		} `json:"indexBalanceDataInfo"`
	} `json:"balanceInfo"`
	VoiceInfo *struct {
		VoiceDataInfo *amount `json:"voiceDataInfo"`
	} `json:"voiceInfo"`
	FlowInfo *struct {
		CommonFlow    *amount `json:"commonFlow"`
		SpecialAmount *amount `json:"specialAmount"`
	} `json:"flowInfo"`
}

type amount struct {
	Used    flexInt `json:"used"`
	Balance flexInt `json:"balance"`
	Over    flexInt `json:"over"`
}

type fluxPackageData struct {
	ProductOFFRatable struct {
		RatableResourcePackages []struct {
			Title        string `json:"title"`
			ProductInfos []struct {
				Title         flexString `json:"title"`
				InfiniteTitle flexString `json:"infiniteTitle"`
				InfiniteValue flexString `json:"infiniteValue"`
				InfiniteUnit  flexString `json:"infiniteUnit"`
				LeftTitle     flexString `json:"leftTitle"`
				LeftHighlight flexString `json:"leftHighlight"`
				RightCommon   flexString `json:"rightCommon"`
			} `json:"productInfos"`
		} `json:"ratableResourcePackages"`
	} `json:"productOFFRatable"`
}

// flexInt accepts a JSON number or a numeric string. Empty strings and null
// decode to zero.
type flexInt int64

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		text = strings.TrimSpace(s)
		if text == "" {
			*f = 0
			return nil
		}
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || !fitsInt64(n) {
		return fmt.Errorf("invalid amount %q", text)
	}
	*f = flexInt(int64(n))
	return nil
}

func fitsInt64(n float64) bool {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return false
	}
	return n >= math.MinInt64 && n < math.MaxInt64
}

// flexString keeps the textual form of a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("null")):
		*f = ""
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", raw)
		}
		*f = flexString(n.String())
	}
	return nil
}
