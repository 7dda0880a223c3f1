package picker

import (
	"encoding/json"
	"testing"
)

func TestQuerySelectionWireShape(t *testing.T) {
	data, err := json.Marshal(QuerySelection())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"query_selection"}` {
		t.Errorf("unexpected wire shape: %s", data)
	}
}

func TestStoreTokenWireShape(t *testing.T) {
	data, err := json.Marshal(StoreToken("abc123"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"store_token","token":"abc123"}` {
		t.Errorf("unexpected wire shape: %s", data)
	}
}

func TestValidateTokenWireShape(t *testing.T) {
	data, err := json.Marshal(ValidateToken("abc123"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"validate_token","token":"abc123"}` {
		t.Errorf("unexpected wire shape: %s", data)
	}
}

func TestSelectionResponseUnmarshal(t *testing.T) {
	raw := `{"type":"selection","source_type":"monitor","source_id":"DP-1","has_approval_token":true}`
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != TypeSelection {
		t.Errorf("expected type selection, got %q", resp.Type)
	}
	if resp.SourceType != SourceMonitor || resp.SourceID != "DP-1" {
		t.Errorf("unexpected source: %q %q", resp.SourceType, resp.SourceID)
	}
	if !resp.HasApprovalToken {
		t.Error("expected has_approval_token true")
	}
	if resp.Geometry != nil {
		t.Error("expected no geometry for monitor selection")
	}
}

func TestRegionResponseUnmarshal(t *testing.T) {
	raw := `{"type":"selection","source_type":"region","source_id":"DP-1","geometry":{"x":-100,"y":200,"width":800,"height":600}}`
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Geometry == nil {
		t.Fatal("expected geometry")
	}
	if resp.Geometry.X != -100 || resp.Geometry.Y != 200 {
		t.Errorf("unexpected origin: %d,%d", resp.Geometry.X, resp.Geometry.Y)
	}
	if resp.Geometry.Width != 800 || resp.Geometry.Height != 600 {
		t.Errorf("unexpected size: %dx%d", resp.Geometry.Width, resp.Geometry.Height)
	}
	if resp.HasApprovalToken {
		t.Error("missing has_approval_token must default to false")
	}
}
