package writer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tscodeintel/lsif-ecma/protocol"
)

func sampleElements() []interface{} {
	proj := protocol.NewProject("1", "a", nil)
	doc := protocol.NewDocument("2", "file:///a/foo.ts", nil)
	rng := protocol.NewRange("3", protocol.Pos{Line: 0, Character: 0}, protocol.Pos{Line: 0, Character: 3}, &protocol.RangeTag{Type: protocol.RangeTagReference})
	contains := protocol.NewContains("4", doc.ID, []protocol.ID{rng.ID})
	return []interface{}{proj, doc, rng, contains}
}

func TestNDJSONOneElementPerLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewNDJSON(&buf)

	if err := sink.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, el := range sampleElements() {
		if err := sink.Emit(el); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := sink.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(sampleElements()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(sampleElements()))
	}
	for i, line := range lines {
		var v map[string]interface{}
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestNDJSONFlushMidStreamThenMoreEmits(t *testing.T) {
	var buf bytes.Buffer
	sink := NewNDJSON(&buf)

	if err := sink.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, el := range sampleElements()[:2] {
		if err := sink.Emit(el); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	for _, el := range sampleElements()[2:] {
		if err := sink.Emit(el); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := sink.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(sampleElements()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(sampleElements()))
	}
}

func TestPrettyJSONIsAnArray(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPrettyJSON(&buf)

	if err := sink.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, el := range sampleElements() {
		if err := sink.Emit(el); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := sink.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	var arr []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &arr); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(arr) != len(sampleElements()) {
		t.Errorf("got %d array entries, want %d", len(arr), len(sampleElements()))
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("expected indented output, got %q", buf.String())
	}
}

func TestGraphVizCollapsesEdgesIntoAdjacency(t *testing.T) {
	var buf bytes.Buffer
	sink := NewGraphViz(&buf)

	if err := sink.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, el := range sampleElements() {
		if err := sink.Emit(el); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := sink.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	var nodes []struct {
		Out map[string][]string `json:"out"`
		In  map[string][]string `json:"in"`
	}
	if err := json.Unmarshal(buf.Bytes(), &nodes); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 vertex nodes (edges collapsed in), got %d", len(nodes))
	}

	doc, rng := nodes[1], nodes[2]
	if got := doc.Out["contains"]; len(got) != 1 || got[0] != "3" {
		t.Errorf("document's out[contains] = %v, want [3]", got)
	}
	if got := rng.In["contains"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("range's in[contains] = %v, want [2]", got)
	}
}

func TestGraphDBReciprocalEdgesAndNDJSONBody(t *testing.T) {
	var buf bytes.Buffer
	sink := NewGraphDB(&buf)

	if err := sink.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, el := range sampleElements() {
		if err := sink.Emit(el); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := sink.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected one record per vertex, got %d lines", len(lines))
	}

	var docRecord struct {
		OutEdges map[string][]string `json:"outEdges"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &docRecord); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if got := docRecord.OutEdges["contains"]; len(got) != 1 || got[0] != "3" {
		t.Errorf("document record outEdges[contains] = %v, want [3]", got)
	}

	var rangeRecord struct {
		InEdges map[string][]string `json:"inEdges"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &rangeRecord); err != nil {
		t.Fatalf("line 2 is not valid JSON: %v", err)
	}
	if got := rangeRecord.InEdges["contains"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("range record inEdges[contains] = %v, want [2]", got)
	}
}

func TestFormatNewDispatchesAndDefaultsToNDJSON(t *testing.T) {
	var buf bytes.Buffer

	if sink, err := New(FormatNDJSON, &buf); err != nil || sink == nil {
		t.Errorf("New(FormatNDJSON): sink=%v err=%v", sink, err)
	}
	if sink, err := New("", &buf); err != nil || sink == nil {
		t.Errorf("New(\"\") should default to ndjson: sink=%v err=%v", sink, err)
	}
	if sink, err := New(FormatPretty, &buf); err != nil || sink == nil {
		t.Errorf("New(FormatPretty): sink=%v err=%v", sink, err)
	}
	if sink, err := New(FormatGraphViz, &buf); err != nil || sink == nil {
		t.Errorf("New(FormatGraphViz): sink=%v err=%v", sink, err)
	}
	if sink, err := New(FormatGraphDB, &buf); err != nil || sink == nil {
		t.Errorf("New(FormatGraphDB): sink=%v err=%v", sink, err)
	}

	if _, err := New(Format("bogus"), &buf); err == nil {
		t.Errorf("expected an error for an unknown format")
	} else if _, ok := err.(*UnknownFormatError); !ok {
		t.Errorf("expected *UnknownFormatError, got %T", err)
	}
}

func TestWrapGzipRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	gz, close := WrapGzip(&buf)

	if _, err := gz.Write([]byte(`{"hello":"world"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("expected compressed bytes to be written")
	}
}
