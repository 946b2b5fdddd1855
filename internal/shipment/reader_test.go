package shipment

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantHeader []string
		wantRows   []map[string]string
	}{
		{"Empty", "", nil, nil},
		{"WhitespaceOnly", " \n\t\r\n ", nil, nil},
		{"HeaderOnly", "shipment_id,supplier\n", []string{"shipment_id", "supplier"}, []map[string]string{}},
		{
			"TrimsNamesAndValues",
			" shipment_id , supplier \n S1 ,  Acme ",
			[]string{"shipment_id", "supplier"},
			[]map[string]string{{"shipment_id": "S1", "supplier": "Acme"}},
		},
		{
			"CRLF",
			"shipment_id,supplier\r\nS1,Acme\r\nS2,Beta\r\n",
			[]string{"shipment_id", "supplier"},
			[]map[string]string{
				{"shipment_id": "S1", "supplier": "Acme"},
				{"shipment_id": "S2", "supplier": "Beta"},
			},
		},
		{
			"ShortRowFillsEmpty",
			"a,b,c\n1",
			[]string{"a", "b", "c"},
			[]map[string]string{{"a": "1", "b": "", "c": ""}},
		},
		{
			"ExtraValuesDropped",
			"a,b\n1,2,3",
			[]string{"a", "b"},
			[]map[string]string{{"a": "1", "b": "2"}},
		},
		{
			"NoQuoting",
			"a,b\n\"x,y\",z",
			[]string{"a", "b"},
			[]map[string]string{{"a": "\"x", "b": "y\""}},
		},
		{
			"BlankInnerLine",
			"a,b\n1,2\n\n3,4",
			[]string{"a", "b"},
			[]map[string]string{{"a": "1", "b": "2"}, {"a": "", "b": ""}, {"a": "3", "b": "4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if !reflect.DeepEqual(got.Header, tt.wantHeader) {
				t.Errorf("Header = %#v, want %#v", got.Header, tt.wantHeader)
			}
			if len(got.Rows) != len(tt.wantRows) {
				t.Fatalf("len(Rows) = %d, want %d", len(got.Rows), len(tt.wantRows))
			}
			for i, want := range tt.wantRows {
				if !reflect.DeepEqual(got.Rows[i].Fields, want) {
					t.Errorf("Rows[%d] = %#v, want %#v", i, got.Rows[i].Fields, want)
				}
				if got.Rows[i].DaysLate != 0 {
					t.Errorf("Rows[%d].DaysLate = %d, want 0 before annotation", i, got.Rows[i].DaysLate)
				}
			}
		})
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("shipment_id\n")
	for _, id := range []string{"C", "A", "B"} {
		sb.WriteString(id + "\n")
	}

	got := Parse(sb.String())
	var ids []string
	for _, r := range got.Rows {
		ids = append(ids, r.Get(FieldShipmentID))
	}
	if !reflect.DeepEqual(ids, []string{"C", "A", "B"}) {
		t.Errorf("row order = %v, want [C A B]", ids)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	text := "shipment_id, po ,supplier,carrier,status,planned_delivery,actual_delivery,handoff_point\n" +
		"S1, PO-1 ,Acme,UPS,delivered,2024-01-01,2024-01-03,Dock A\n" +
		"S2,PO-2,  Beta,DHL,in_transit,2024-01-05,,Customs\n"

	first := Parse(text)
	second := Parse(Format(first))

	if !reflect.DeepEqual(first.Header, second.Header) {
		t.Fatalf("header changed: %v -> %v", first.Header, second.Header)
	}
	for i := range first.Rows {
		if !reflect.DeepEqual(first.Rows[i].Values(first.Header), second.Rows[i].Values(second.Header)) {
			t.Errorf("row %d changed: %v -> %v", i, first.Rows[i].Fields, second.Rows[i].Fields)
		}
	}
	if got := second.Rows[1].Get(FieldSupplier); got != "Beta" {
		t.Errorf("supplier = %q, want trimmed %q", got, "Beta")
	}
}
