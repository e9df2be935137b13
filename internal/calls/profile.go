package calls

import "sync"

// ProfileFields is the fixed, ordered set of variable fields interpolated into
// every squad stage. The web form, the initiator validation, and the remote
// stage prompts all share this schema; adding a field here is the one place to
// extend it.
var ProfileFields = []string{
	"appointment_date",
	"insurance_rep",
	"insurance_carrier",
	"insurance_phone",
	"insured_name",
	"insured_dob",
	"insured_ss",
	"insured_id",
	"relationship_to_patient",
	"patient_name",
	"patient_dob",
	"employer",
	"group_number",
	"claims_address",
	"payor_id",
	"clinic_name",
	"practice_tax_id",
	"treating_dentist_name",
	"dentist_npi",
}

// ValidateProfile requires every schema field to be present. Values may be
// empty strings; absence is what gets rejected.
func ValidateProfile(profile map[string]string) error {
	var missing []string
	for _, f := range ProfileFields {
		if _, ok := profile[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &ProfileError{Missing: missing}
	}
	return nil
}

func copyProfile(profile map[string]string) map[string]string {
	out := make(map[string]string, len(profile))
	for k, v := range profile {
		out[k] = v
	}
	return out
}

// CurrentProfile holds the profile used for API-initiated calls. Each form
// submission replaces it wholesale; records keep their own snapshots, so a
// replacement never rewrites history.
type CurrentProfile struct {
	mu     sync.RWMutex
	fields map[string]string
}

func NewCurrentProfile(seed map[string]string) *CurrentProfile {
	return &CurrentProfile{fields: copyProfile(seed)}
}

func (p *CurrentProfile) Get() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copyProfile(p.fields)
}

func (p *CurrentProfile) Set(fields map[string]string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fields = copyProfile(fields)
}

// DefaultProfile returns the seed profile used until a form submission
// replaces it.
func DefaultProfile() map[string]string {
	return map[string]string{
		"appointment_date":        "01-07-2025",
		"insurance_rep":           "WEB",
		"insurance_carrier":       "METLIFE PPO",
		"insurance_phone":         "(800)275-4638",
		"insured_name":            "Cooke, Marcell",
		"insured_dob":             "09-07-1947",
		"insured_ss":              "N/A",
		"insured_id":              "104389769",
		"relationship_to_patient": "SELF",
		"patient_name":            "Cooke, Marcell",
		"patient_dob":             "09-07-1947",
		"employer":                "FEDERAL EMPLOYEES DENTAL AND",
		"group_number":            "121332",
		"claims_address":          "PO BOX 14093 EL PASO TX 79998",
		"payor_id":                "65978",
		"clinic_name":             "Blue Lines Dental Clinic",
		"practice_tax_id":         "123456",
		"treating_dentist_name":   "Dr. Dillon",
		"dentist_npi":             "789012",
	}
}
