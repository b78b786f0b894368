package features

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
)

type (
	//Record describes one simulated network connection as the classifier
	//backend expects it. Field order follows the backend's feature order.
	Record struct {
		Duration                float64 `json:"duration"`
		ProtocolType            string  `json:"protocol_type" default:"tcp"`
		Service                 string  `json:"service" default:"http"`
		Flag                    string  `json:"flag" default:"SF"`
		SrcBytes                float64 `json:"src_bytes"`
		DstBytes                float64 `json:"dst_bytes"`
		Land                    float64 `json:"land"`
		WrongFragment           float64 `json:"wrong_fragment"`
		Urgent                  float64 `json:"urgent"`
		Hot                     float64 `json:"hot"`
		NumFailedLogins         float64 `json:"num_failed_logins"`
		LoggedIn                float64 `json:"logged_in" default:"1"`
		NumCompromised          float64 `json:"num_compromised"`
		RootShell               float64 `json:"root_shell"`
		SuAttempted             float64 `json:"su_attempted"`
		NumRoot                 float64 `json:"num_root"`
		NumFileCreations        float64 `json:"num_file_creations"`
		NumShells               float64 `json:"num_shells"`
		NumAccessFiles          float64 `json:"num_access_files"`
		NumOutboundCmds         float64 `json:"num_outbound_cmds"`
		IsHostLogin             float64 `json:"is_host_login"`
		IsGuestLogin            float64 `json:"is_guest_login"`
		Count                   float64 `json:"count" default:"5"`
		SrvCount                float64 `json:"srv_count" default:"5"`
		SerrorRate              float64 `json:"serror_rate"`
		SrvSerrorRate           float64 `json:"srv_serror_rate"`
		RerrorRate              float64 `json:"rerror_rate"`
		SrvRerrorRate           float64 `json:"srv_rerror_rate"`
		SameSrvRate             float64 `json:"same_srv_rate" default:"1.0"`
		DiffSrvRate             float64 `json:"diff_srv_rate"`
		SrvDiffHostRate         float64 `json:"srv_diff_host_rate"`
		DstHostCount            float64 `json:"dst_host_count" default:"5"`
		DstHostSrvCount         float64 `json:"dst_host_srv_count" default:"5"`
		DstHostSameSrvRate      float64 `json:"dst_host_same_srv_rate" default:"1.0"`
		DstHostDiffSrvRate      float64 `json:"dst_host_diff_srv_rate"`
		DstHostSameSrcPortRate  float64 `json:"dst_host_same_src_port_rate"`
		DstHostSrvDiffHostRate  float64 `json:"dst_host_srv_diff_host_rate"`
		DstHostSerrorRate       float64 `json:"dst_host_serror_rate"`
		DstHostSrvSerrorRate    float64 `json:"dst_host_srv_serror_rate"`
		DstHostRerrorRate       float64 `json:"dst_host_rerror_rate"`
		DstHostSrvRerrorRate    float64 `json:"dst_host_srv_rerror_rate"`
	}

	//Fields holds user supplied values keyed by feature name, as typed into
	//a form or read from a CSV cell
	Fields map[string]string

	fieldInfo struct {
		offset  int
		numeric bool
	}
)

var (
	fieldNames []string
	fieldIndex = make(map[string]fieldInfo)
)

func init() {
	t := reflect.TypeOf(Record{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		fieldNames = append(fieldNames, name)
		fieldIndex[name] = fieldInfo{
			offset:  i,
			numeric: f.Type.Kind() == reflect.Float64,
		}
	}
}

//Names returns the feature names in backend order
func Names() []string {
	names := make([]string, len(fieldNames))
	copy(names, fieldNames)
	return names
}

//Has reports whether name is one of the feature names
func Has(name string) bool {
	_, ok := fieldIndex[name]
	return ok
}

//IsNumeric reports whether the named feature is sent as a number
func IsNumeric(name string) bool {
	return fieldIndex[name].numeric
}

// Default returns the record used for every field the user leaves unset.
// Rate fields default to values seen on ordinary traffic rather than 0.
func Default() Record {
	var rec Record
	// the struct tags are static so Set cannot fail at runtime
	if err := defaults.Set(&rec); err != nil {
		panic(err)
	}
	return rec
}

//Build merges fields over the default record
func Build(fields Fields) Record {
	return BuildFrom(Default(), fields)
}

// BuildFrom merges fields over base one field at a time. Numeric fields are
// coerced and never fail: empty or unparsable input becomes 0. Categorical
// fields are copied verbatim and unknown names are ignored.
func BuildFrom(base Record, fields Fields) Record {
	rec := base
	v := reflect.ValueOf(&rec).Elem()
	for name, raw := range fields {
		info, ok := fieldIndex[name]
		if !ok {
			continue
		}
		target := v.Field(info.offset)
		if info.numeric {
			target.SetFloat(Coerce(raw))
		} else {
			target.SetString(raw)
		}
	}
	return rec
}

//Coerce converts user input to a finite number, mapping anything else to 0
func Coerce(raw string) float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return val
}

//Get returns the string form of the named field
func (r Record) Get(name string) (string, bool) {
	info, ok := fieldIndex[name]
	if !ok {
		return "", false
	}
	f := reflect.ValueOf(r).Field(info.offset)
	if info.numeric {
		return strconv.FormatFloat(f.Float(), 'f', -1, 64), true
	}
	return f.String(), true
}

//Fields renders every field of the record as form input
func (r Record) Fields() Fields {
	out := make(Fields, len(fieldNames))
	for _, name := range fieldNames {
		out[name], _ = r.Get(name)
	}
	return out
}

//Values renders the record in Names() order
func (r Record) Values() []string {
	out := make([]string, 0, len(fieldNames))
	for _, name := range fieldNames {
		val, _ := r.Get(name)
		out = append(out, val)
	}
	return out
}

//Clone returns a copy of the fields
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
