package profile

import (
	"testing"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCategorize_CategoryAxis(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"URLLC_Autonomous_Vehicles", "V2X"},
		{"V2X_Cooperative_Driving", "V2X"},
		{"URLLC_Industrial_Automation", "URLLC"},
		{"URLLC_Remote_Surgery", "URLLC"},
		{"mMTC_Smart_Agriculture", "mMTC"},
		{"mMTC_Environmental_Monitoring", "mMTC"},
		{"eMBB_Cloud_Gaming", "eMBB"},
		{"Edge_Computing_MEC", "eMBB"},
		{"", "eMBB"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.raw, AxisCategory))
		})
	}
}

func TestCategorize_V2XBeatsURLLC(t *testing.T) {
	// "autonomous" is a V2X keyword and "urllc" a URLLC keyword; V2X is checked first.
	assert.Equal(t, domain.CategoryV2X, CategorizeCategory("URLLC_Autonomous_Vehicles"))
	assert.Equal(t, domain.CategoryV2X, CategorizeCategory("critical vehicle platoon"))
}

func TestCategorize_ContextAxis(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Rural_Farm_Zone", "rural"},
		{"Highway_Corridor_Mile_45_GPS_39.7392_104.9903", "highway"},
		{"Industrial_Zone_Manufacturing_A7", "industrial"},
		{"Smart_City_IoT_Hub_Downtown", "urban"},
		{"industrial road", "highway"},
		{"", "urban"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.raw, AxisContext))
		})
	}
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "mMTC", Categorize("MASSIVE-IOT", AxisCategory))
	assert.Equal(t, "rural", Categorize("FARMLAND", AxisContext))
}
