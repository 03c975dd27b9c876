package console

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{`true`, true, false},
		{`false`, false, false},
		{`1`, true, false},
		{`0`, false, false},
		{`"1"`, true, false},
		{`"false"`, false, false},
		{`null`, false, false},
		{`"maybe"`, false, true},
		{`1.5`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f Flag
			err := json.Unmarshal([]byte(tt.in), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, bool(f))
		})
	}
}

func TestServiceInfo_NullVersusEmpty(t *testing.T) {
	none, err := json.Marshal(ServiceInfo{SDKCode: "A"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sdkCode":"A","roles":null,"licenseConfigs":null}`, string(none))

	empty, err := json.Marshal(ServiceInfo{SDKCode: "A", LicenseConfigs: []LicenseConfigOp{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sdkCode":"A","roles":null,"licenseConfigs":[]}`, string(empty))
}

func TestServiceDefinition_Accessors(t *testing.T) {
	var def ServiceDefinition
	assert.Nil(t, def.Roles())
	assert.Nil(t, def.LicenseConfigs())

	require.NoError(t, json.Unmarshal([]byte(`{
		"code": "AssetComputeSDK",
		"enabled": true,
		"type": "entp",
		"properties": {
			"roles": [{"id": 1, "code": "ent_user_sdk", "name": "Developer"}],
			"licenseConfigs": [{"id": "1", "productId": "P", "name": "Default"}]
		}
	}`), &def))
	require.Len(t, def.Roles(), 1)
	assert.Equal(t, "ent_user_sdk", def.Roles()[0].Code)
	assert.JSONEq(t, `1`, string(def.Roles()[0].ID))
	assert.Equal(t, []LicenseConfig{{ID: "1", ProductID: "P", Name: "Default"}}, def.LicenseConfigs())
}

func TestRole_KeepsUnknownFields(t *testing.T) {
	catalog := `[{"id": 7, "code": "ent_user_sdk", "name": "Developer", "targetSource": "ADMIN", "meta": {"tier": 2}}]`

	var roles []Role
	require.NoError(t, json.Unmarshal([]byte(catalog), &roles))
	require.Len(t, roles, 1)
	assert.Equal(t, "ent_user_sdk", roles[0].Code)

	out, err := json.Marshal(ServiceInfo{SDKCode: "AssetComputeSDK", Roles: append([]Role{}, roles...)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sdkCode":"AssetComputeSDK","roles":`+catalog+`,"licenseConfigs":null}`, string(out))

	built, err := json.Marshal(Role{Code: "admin"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"admin"}`, string(built))
}

func TestSubscriptionRequest_SDKCodes(t *testing.T) {
	req := &SubscriptionRequest{Services: []ServiceInfo{{SDKCode: "B"}, {SDKCode: "A"}}}
	assert.Equal(t, []string{"B", "A"}, req.SDKCodes())
}
