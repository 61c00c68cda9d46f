package ngcmd

import (
	"reflect"
	"testing"

	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
)

func TestEncodeAssignSlotLongPacking(t *testing.T) {
	schema := Catalog["AssignSlot="]
	cmd := &model.NGCommand{
		Name: "AssignSlot=",
		Tag:  schema.Tag,
		Args: []model.NGArg{
			{Kind: model.ItemSlot, Value: 100},
			{Kind: model.Long, Value: 200},
		},
	}
	d := diag.New()
	if !Encode(cmd, schema, NewCounters(), model.NewNGCommandGroup(), d) {
		t.Fatalf("unexpected encode failure: %v", d.All())
	}
	want := []uint16{0x0103, 0x0064, 0x00C8, 0x0000}
	if !reflect.DeepEqual(cmd.Words, want) {
		t.Fatalf("want %04X, got %04X", want, cmd.Words)
	}
}

func TestEncodeTriggerGroupDowngrade(t *testing.T) {
	schema := Catalog["TriggerGroup="]
	cmd := &model.NGCommand{
		Name: "TriggerGroup=",
		Tag:  schema.Tag,
		Args: []model.NGArg{
			{Kind: model.Word, Value: 5},
			{Kind: model.Long, Value: 1},
			{Kind: model.Long, Value: 2},
			{Kind: model.Long, Value: 3},
		},
	}
	d := diag.New()
	if !Encode(cmd, schema, NewCounters(), model.NewNGCommandGroup(), d) {
		t.Fatalf("unexpected encode failure: %v", d.All())
	}
	wantHeader := uint16(tagTriggerGroupWord)<<8 | 4
	if cmd.Words[0] != wantHeader {
		t.Fatalf("expected downgrade header %04X, got %04X", wantHeader, cmd.Words[0])
	}
	want := []uint16{wantHeader, 5, 1, 2, 3}
	if !reflect.DeepEqual(cmd.Words, want) {
		t.Fatalf("want %04X, got %04X", want, cmd.Words)
	}
}

func TestEncodeTriggerGroupNoDowngrade(t *testing.T) {
	schema := Catalog["TriggerGroup="]
	cmd := &model.NGCommand{
		Name: "TriggerGroup=",
		Tag:  schema.Tag,
		Args: []model.NGArg{
			{Kind: model.Word, Value: 5},
			{Kind: model.Long, Value: 0x10000},
			{Kind: model.Long, Value: 2},
			{Kind: model.Long, Value: 3},
		},
	}
	d := diag.New()
	if !Encode(cmd, schema, NewCounters(), model.NewNGCommandGroup(), d) {
		t.Fatalf("unexpected encode failure: %v", d.All())
	}
	wantHeader := uint16(tagTriggerGroup)<<8 | 7
	if cmd.Words[0] != wantHeader {
		t.Fatalf("expected non-downgraded header %04X, got %04X", wantHeader, cmd.Words[0])
	}
}

func TestEncodeOccurrenceCap(t *testing.T) {
	schema := Catalog["SetDemoMode="]
	counters := NewCounters()
	group := model.NewNGCommandGroup()
	d := diag.New()

	for i := 0; i < 2; i++ {
		cmd := &model.NGCommand{Name: schema.Name, Tag: schema.Tag, Args: []model.NGArg{{Kind: model.Bool, Value: 1}}}
		Encode(cmd, schema, counters, group, d)
	}
	if !d.Fatal() {
		t.Fatal("expected a fatal occurrence diagnostic on the second SetDemoMode=")
	}
	if group.OptionsFlags&schema.FlagBit == 0 {
		t.Fatal("expected the first occurrence to set the options flag bit")
	}
}

func TestEncodeOversizePayloadIsRangeFatal(t *testing.T) {
	schema := Catalog["Parameters="]
	vals := make([]int64, 260)
	cmd := &model.NGCommand{
		Name: schema.Name,
		Tag:  schema.Tag,
		Args: []model.NGArg{
			{Kind: model.Long, Value: 1},
			{Kind: model.ArrayWord, Array: vals},
		},
	}
	d := diag.New()
	if Encode(cmd, schema, NewCounters(), model.NewNGCommandGroup(), d) {
		t.Fatal("expected Encode to fail for a payload exceeding 255 words")
	}
	if !d.Fatal() {
		t.Fatal("expected a fatal diagnostic for the oversize payload")
	}
	found := false
	for _, item := range d.All() {
		if item.Kind == diag.Range {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the oversize-payload diagnostic to use diag.Range")
	}
	if cmd.Words != nil {
		t.Fatal("expected cmd.Words to stay nil when encoding is rejected")
	}
}

func TestEncodeArrayByteEvenPadding(t *testing.T) {
	schema := Catalog["LoadPalette="]
	cmd := &model.NGCommand{
		Name: schema.Name,
		Tag:  schema.Tag,
		Args: []model.NGArg{
			{Kind: model.String, Value: 7},
			{Kind: model.ArrayByte, Array: []int64{1, 2, 3}},
		},
	}
	d := diag.New()
	if !Encode(cmd, schema, NewCounters(), model.NewNGCommandGroup(), d) {
		t.Fatalf("unexpected encode failure: %v", d.All())
	}
	// payload: string word, then array-byte words: ceil((1+3)/2)=2 words
	if len(cmd.Words) != 1+1+2 {
		t.Fatalf("expected header+string+2 array words, got %d words: %04X", len(cmd.Words), cmd.Words)
	}
}
