package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/registry"
	"github.com/gohealth/itemtypes/types"
	"github.com/gohealth/itemtypes/xmlio"
)

func TestRegisterAndResolve(t *testing.T) {
	reg := registry.New()
	id := uuid.New()
	if err := reg.Register(id, "sample", func() itemtypes.TypeData { return &types.Height{} }); err != nil {
		t.Fatalf("Register: %v", err)
	}

	data, err := reg.NewData(id)
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}
	if _, ok := data.(*types.Height); !ok {
		t.Errorf("NewData returned %T, want *types.Height", data)
	}

	if got, ok := reg.LookupName("sample"); !ok || got != id {
		t.Errorf("LookupName = %s, %v; want %s, true", got, ok, id)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := registry.New()
	id := uuid.New()
	factory := func() itemtypes.TypeData { return &types.Height{} }
	if err := reg.Register(id, "dup", factory); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := reg.Register(id, "other", factory); err == nil {
		t.Error("duplicate id accepted")
	}
	if err := reg.Register(uuid.New(), "dup", factory); err == nil {
		t.Error("duplicate name accepted")
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	reg := registry.New()
	factory := func() itemtypes.TypeData { return &types.Height{} }

	if err := reg.Register(uuid.Nil, "x", factory); err == nil {
		t.Error("zero id accepted")
	}
	if err := reg.Register(uuid.New(), "", factory); err == nil {
		t.Error("empty name accepted")
	}
	if err := reg.Register(uuid.New(), "x", nil); err == nil {
		t.Error("nil factory accepted")
	}
}

func TestNewDataUnknownType(t *testing.T) {
	_, err := registry.New().NewData(uuid.New())
	if !errors.Is(err, itemtypes.ErrUnknownTypeID) {
		t.Errorf("expected ErrUnknownTypeID, got %v", err)
	}
}

func TestDefaultRegistryHasAllTypes(t *testing.T) {
	want := []string{
		"application-data-reference", "appointment", "blood-glucose",
		"blood-pressure", "blue-button-text-file", "body-composition",
		"care-plan", "condition", "emotion", "exercise",
		"exercise-samples", "file", "height", "immunization", "insight",
		"lab-test-results", "medication", "personal", "procedure",
		"weight",
	}
	got := registry.Default.Names()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	for _, name := range want {
		id, ok := registry.Default.LookupName(name)
		if !ok {
			t.Fatalf("type %q not resolvable by name", name)
		}
		data, err := registry.Default.NewData(id)
		if err != nil {
			t.Fatalf("NewData(%q): %v", name, err)
		}
		if data.TypeID() != id {
			t.Errorf("%q: TypeID %s does not match registered id %s", name, data.TypeID(), id)
		}
		if data.TypeName() != name {
			t.Errorf("%q: TypeName %q does not match registered name", name, data.TypeName())
		}
	}
}

func TestThingRoundTrip(t *testing.T) {
	bp, err := types.NewBloodPressure(120, 80)
	if err != nil {
		t.Fatalf("NewBloodPressure: %v", err)
	}
	thing := registry.NewThing(bp)

	w := xmlio.NewWriter()
	defer w.Close()
	if err := thing.WriteXML(w); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	raw, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	nav, err := xmlio.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := registry.ParseThing(nav, registry.Default)
	if err != nil {
		t.Fatalf("ParseThing: %v", err)
	}

	if got.ThingID != thing.ThingID {
		t.Errorf("ThingID = %s, want %s", got.ThingID, thing.ThingID)
	}
	if got.TypeID != types.BloodPressureTypeID {
		t.Errorf("TypeID = %s, want %s", got.TypeID, types.BloodPressureTypeID)
	}
	parsed, ok := got.Data.(*types.BloodPressure)
	if !ok {
		t.Fatalf("Data is %T, want *types.BloodPressure", got.Data)
	}
	if parsed.Systolic() != 120 || parsed.Diastolic() != 80 {
		t.Errorf("reading = %d/%d, want 120/80", parsed.Systolic(), parsed.Diastolic())
	}
}

func TestParseThingErrors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want error
	}{
		{
			name: "unknown type id",
			xml: "<thing><thing-id>" + uuid.New().String() + "</thing-id>" +
				"<type-id>" + uuid.New().String() + "</type-id>" +
				"<data-xml><mystery/></data-xml></thing>",
			want: itemtypes.ErrUnknownTypeID,
		},
		{
			name: "missing data-xml",
			xml: "<thing><thing-id>" + uuid.New().String() + "</thing-id>" +
				"<type-id>" + types.HeightTypeID.String() + "</type-id></thing>",
			want: itemtypes.ErrElementMissing,
		},
		{
			name: "not a thing",
			xml:  "<height><value><m>1.8</m></value></height>",
			want: itemtypes.ErrElementMissing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, err := xmlio.Parse([]byte(tt.xml))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			_, err = registry.ParseThing(nav, registry.Default)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseThing error = %v, want %v", err, tt.want)
			}
		})
	}
}
