package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/lue/population"
)

func smallResult(t *testing.T) *population.Result {
	t.Helper()
	p := population.Parameters{
		InitialPopulation:  100_000,
		Years:              12,
		MaxAge:             90,
		MalesPer100Females: 105,
		TargetTFR:          2,
		InfantMortality:    0.01,
	}
	r, err := p.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return r
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteResult(nil); err != nil {
		t.Errorf("nil manager WriteResult = %v", err)
	}
	if om.Dir() != "" {
		t.Error("nil manager should have no dir")
	}
}

func TestOutputManagerWriteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}

	r := smallResult(t)
	if err := om.WriteResult(r); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}
	if err := om.WriteMilestones(DetectMilestones(r.Timeline, 1.0/3.0)); err != nil {
		t.Fatalf("WriteMilestones failed: %v", err)
	}

	for _, name := range []string{"timeline.csv", "age_distribution.csv", "cohort_fertility.csv", "result.json", "parameters.yaml", "milestones.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	f, err := os.Open(filepath.Join(dir, "timeline.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []TimelineRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading timeline.csv: %v", err)
	}
	if len(rows) != 13 {
		t.Fatalf("timeline rows = %d, want 13", len(rows))
	}
	if rows[12].Total != r.Final.Count() {
		t.Errorf("last timeline total = %d, want %d", rows[12].Total, r.Final.Count())
	}

	data, err := os.ReadFile(filepath.Join(dir, "parameters.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var p population.Parameters
	if err := yaml.Unmarshal(data, &p); err != nil {
		t.Fatalf("parsing parameters.yaml: %v", err)
	}
	if p != r.Parameters {
		t.Errorf("parameters.yaml = %+v, want %+v", p, r.Parameters)
	}

	header, err := os.ReadFile(filepath.Join(dir, "milestones.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(header), "type,year,population,description") {
		t.Errorf("milestones.csv header = %q", strings.SplitN(string(header), "\n", 2)[0])
	}
}

func TestWriteResultJSON(t *testing.T) {
	r := smallResult(t)
	path := filepath.Join(t.TempDir(), "data.json")

	n, err := WriteResultJSON(r, path)
	if err != nil {
		t.Fatalf("WriteResultJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Errorf("reported %d bytes, file has %d", n, len(data))
	}

	var got ResultJSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing result: %v", err)
	}
	if len(got.Final) != 92 {
		t.Errorf("final ages = %d, want 92", len(got.Final))
	}
	if len(got.Timeline) != 13 {
		t.Errorf("timeline years = %d, want 13", len(got.Timeline))
	}
	if got.Parameters != r.Parameters {
		t.Errorf("parameters = %+v, want %+v", got.Parameters, r.Parameters)
	}
}

func TestAgeRowsCoverAllAges(t *testing.T) {
	m := population.AgeGenderMap{
		{Age: 0, Gender: population.Male}:   1,
		{Age: 3, Gender: population.Female}: 2,
	}
	rows := AgeRows(m)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[3].Females != 2 || rows[1].Males != 0 {
		t.Errorf("rows = %+v", rows)
	}
}
