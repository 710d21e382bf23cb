package domain

// Stage is one step of the fixed client-engagement pipeline. The pipeline is
// a single linear chain with no back-transitions and no branching:
// Implementation -> Validation -> Pre-Scale -> Scale.
type Stage string

const (
	StageImplementation Stage = "Implementation"
	StageValidation     Stage = "Validation"
	StagePreScale       Stage = "Pre-Scale"
	StageScale          Stage = "Scale"
)

func (s Stage) IsValid() bool {
	switch s {
	case StageImplementation, StageValidation, StagePreScale, StageScale:
		return true
	default:
		return false
	}
}

// Next returns the stage that follows s. Scale is terminal, so it reports
// false, as does any value outside the pipeline.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageImplementation:
		return StageValidation, true
	case StageValidation:
		return StagePreScale, true
	case StagePreScale:
		return StageScale, true
	default:
		return "", false
	}
}

// AllStages lists the pipeline in order, for board columns and iteration.
func AllStages() []Stage {
	return []Stage{StageImplementation, StageValidation, StagePreScale, StageScale}
}
