package core

// Settings is the per-identity store header used on invoices.
type Settings struct {
	StoreName    string `json:"store_name"`
	StoreAddress string `json:"store_address"`
	StoreGST     string `json:"store_gst"`
	StoreContact string `json:"store_contact"`
}

// SettingKey names one editable settings field.
type SettingKey string

const (
	SettingStoreName    SettingKey = "store_name"
	SettingStoreAddress SettingKey = "store_address"
	SettingStoreGST     SettingKey = "store_gst"
	SettingStoreContact SettingKey = "store_contact"
)

// SettingKeys lists the editable fields in display order.
var SettingKeys = []SettingKey{SettingStoreName, SettingStoreAddress, SettingStoreGST, SettingStoreContact}

// Label is the human-readable field name.
func (k SettingKey) Label() string {
	switch k {
	case SettingStoreName:
		return "Store Name"
	case SettingStoreAddress:
		return "Store Address"
	case SettingStoreGST:
		return "GST Number"
	case SettingStoreContact:
		return "Contact Number"
	}
	return string(k)
}

// Valid reports whether k is one of the known fields.
func (k SettingKey) Valid() bool {
	for _, known := range SettingKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Get returns the value of a field.
func (s Settings) Get(k SettingKey) string {
	switch k {
	case SettingStoreName:
		return s.StoreName
	case SettingStoreAddress:
		return s.StoreAddress
	case SettingStoreGST:
		return s.StoreGST
	case SettingStoreContact:
		return s.StoreContact
	}
	return ""
}

// With returns a copy of s with one field replaced.
func (s Settings) With(k SettingKey, value string) Settings {
	switch k {
	case SettingStoreName:
		s.StoreName = value
	case SettingStoreAddress:
		s.StoreAddress = value
	case SettingStoreGST:
		s.StoreGST = value
	case SettingStoreContact:
		s.StoreContact = value
	}
	return s
}

// Apply merges a partial update into s.
func (s Settings) Apply(update SettingsUpdate) Settings {
	for k, v := range update {
		s = s.With(k, v)
	}
	return s
}

// HasHeader reports whether a store name is set; the invoice header
// is considered empty without one.
func (s Settings) HasHeader() bool {
	return s.StoreName != ""
}

// SettingsUpdate is a partial settings change keyed by field.
type SettingsUpdate map[SettingKey]string
