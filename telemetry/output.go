package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/lue/population"
)

// TimelineRow is one year of the timeline in CSV form.
type TimelineRow struct {
	Year    population.Year  `csv:"year" json:"year"`
	Males   population.Count `csv:"males" json:"males"`
	Females population.Count `csv:"females" json:"females"`
	Total   population.Count `csv:"total" json:"total"`
	Births  population.Count `csv:"births" json:"births"`
	Deaths  population.Count `csv:"deaths" json:"deaths"`
}

// AgeRow is one age of a distribution in CSV form.
type AgeRow struct {
	Age     population.Age   `csv:"age" json:"age"`
	Males   population.Count `csv:"males" json:"males"`
	Females population.Count `csv:"females" json:"females"`
}

// CohortRow is the completed fertility of one birth year.
type CohortRow struct {
	BirthYear population.Year  `csv:"birth_year" json:"birth_year"`
	Females   population.Count `csv:"females" json:"females"`
	Births    population.Count `csv:"births" json:"births"`
	Ratio     float64          `csv:"ratio" json:"-"`
}

// ResultJSON is the serializable form of a projection result.
type ResultJSON struct {
	Parameters      population.Parameters `json:"parameters"`
	Initial         []AgeRow              `json:"initial_population"`
	Final           []AgeRow              `json:"final_population"`
	CohortFertility []CohortRow           `json:"cohort_fertility"`
	Timeline        []TimelineRow         `json:"timeline"`
}

// TimelineRows flattens a timeline.
func TimelineRows(t *population.Timeline) []TimelineRow {
	rows := make([]TimelineRow, 0, t.Len())
	t.Each(func(y population.Year, d population.TimelineData) {
		rows = append(rows, TimelineRow{
			Year:    y,
			Males:   d.Males,
			Females: d.Females,
			Total:   d.Sum(),
			Births:  d.Births,
			Deaths:  d.Deaths,
		})
	})
	return rows
}

// AgeRows flattens an age distribution from age 0 to its oldest key.
func AgeRows(m population.AgeGenderMap) []AgeRow {
	if len(m) == 0 {
		return nil
	}
	oldest := int(m.MaxAge())
	rows := make([]AgeRow, 0, oldest+1)
	for a := 0; a <= oldest; a++ {
		age := population.Age(a)
		rows = append(rows, AgeRow{
			Age:     age,
			Males:   m.CountAgeGender(age, population.Male),
			Females: m.CountAgeGender(age, population.Female),
		})
	}
	return rows
}

// CohortRows flattens cohort fertility in birth-year order.
func CohortRows(cf population.CohortFertility) []CohortRow {
	years := cf.Years()
	rows := make([]CohortRow, 0, len(years))
	for _, y := range years {
		d := cf[y]
		rows = append(rows, CohortRow{BirthYear: y, Females: d.Females, Births: d.Births, Ratio: d.Ratio()})
	}
	return rows
}

// NewResultJSON converts a result for serialization.
func NewResultJSON(r *population.Result) ResultJSON {
	return ResultJSON{
		Parameters:      r.Parameters,
		Initial:         AgeRows(r.Initial),
		Final:           AgeRows(r.Final),
		CohortFertility: CohortRows(r.CohortFertility),
		Timeline:        TimelineRows(r.Timeline),
	}
}

// WriteResultJSON writes r as indented JSON to path and returns the byte count.
func WriteResultJSON(r *population.Result, path string) (int, error) {
	data, err := json.MarshalIndent(NewResultJSON(r), "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshaling result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("writing result: %w", err)
	}
	return len(data), nil
}

// OutputManager writes projection results into a directory.
type OutputManager struct {
	dir string
}

// NewOutputManager creates the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{dir: dir}, nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteResult writes timeline.csv, age_distribution.csv, cohort_fertility.csv,
// result.json and parameters.yaml.
func (om *OutputManager) WriteResult(r *population.Result) error {
	if om == nil {
		return nil
	}
	if err := writeCSV(filepath.Join(om.dir, "timeline.csv"), TimelineRows(r.Timeline)); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(om.dir, "age_distribution.csv"), AgeRows(r.Final)); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(om.dir, "cohort_fertility.csv"), CohortRows(r.CohortFertility)); err != nil {
		return err
	}
	if _, err := WriteResultJSON(r, filepath.Join(om.dir, "result.json")); err != nil {
		return err
	}
	return om.WriteParameters(r.Parameters)
}

// WriteMilestones writes milestones.csv.
func (om *OutputManager) WriteMilestones(ms []Milestone) error {
	if om == nil {
		return nil
	}
	return writeCSV(filepath.Join(om.dir, "milestones.csv"), ms)
}

// WriteParameters saves the parameters as YAML.
func (om *OutputManager) WriteParameters(p population.Parameters) error {
	if om == nil {
		return nil
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling parameters: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "parameters.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing parameters.yaml: %w", err)
	}
	return nil
}

// writeCSV writes records with a header row.
func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := gocsv.MarshalFile(records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
