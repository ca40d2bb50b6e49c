package types

import (
	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/registry"
)

// All thing types register into the default registry here, so that a
// blank import of this package makes every type resolvable by ID.
func init() {
	registry.MustRegister(ApplicationDataReferenceTypeID, "application-data-reference", func() itemtypes.TypeData { return &ApplicationDataReference{} })
	registry.MustRegister(AppointmentTypeID, "appointment", func() itemtypes.TypeData { return &Appointment{} })
	registry.MustRegister(BloodGlucoseTypeID, "blood-glucose", func() itemtypes.TypeData { return &BloodGlucose{} })
	registry.MustRegister(BloodPressureTypeID, "blood-pressure", func() itemtypes.TypeData { return &BloodPressure{} })
	registry.MustRegister(BlueButtonTextFileTypeID, "blue-button-text-file", func() itemtypes.TypeData { return &BlueButtonTextFile{} })
	registry.MustRegister(BodyCompositionTypeID, "body-composition", func() itemtypes.TypeData { return &BodyComposition{} })
	registry.MustRegister(CarePlanTypeID, "care-plan", func() itemtypes.TypeData { return &CarePlan{} })
	registry.MustRegister(ConditionTypeID, "condition", func() itemtypes.TypeData { return &Condition{} })
	registry.MustRegister(EmotionTypeID, "emotion", func() itemtypes.TypeData { return &Emotion{} })
	registry.MustRegister(ExerciseTypeID, "exercise", func() itemtypes.TypeData { return &Exercise{} })
	registry.MustRegister(ExerciseSamplesTypeID, "exercise-samples", func() itemtypes.TypeData { return &ExerciseSamples{} })
	registry.MustRegister(FileTypeID, "file", func() itemtypes.TypeData { return &File{} })
	registry.MustRegister(HeightTypeID, "height", func() itemtypes.TypeData { return &Height{} })
	registry.MustRegister(ImmunizationTypeID, "immunization", func() itemtypes.TypeData { return &Immunization{} })
	registry.MustRegister(InsightTypeID, "insight", func() itemtypes.TypeData { return &Insight{} })
	registry.MustRegister(LabTestResultsTypeID, "lab-test-results", func() itemtypes.TypeData { return &LabTestResults{} })
	registry.MustRegister(MedicationTypeID, "medication", func() itemtypes.TypeData { return &Medication{} })
	registry.MustRegister(PersonalTypeID, "personal", func() itemtypes.TypeData { return &Personal{} })
	registry.MustRegister(ProcedureTypeID, "procedure", func() itemtypes.TypeData { return &Procedure{} })
	registry.MustRegister(WeightTypeID, "weight", func() itemtypes.TypeData { return &Weight{} })
}
