package registry

// Canonical identifiers of the embedded catalogue.
const (
	GreatStrides       ID = 1
	Manipulation       ID = 2
	WasteNot           ID = 3
	WasteNot2          ID = 4
	Innovation         ID = 5
	FinalAppraisal     ID = 6
	Veneration         ID = 7
	BasicSynthesis     ID = 8
	BasicTouch         ID = 9
	MastersMend        ID = 10
	StandardTouch      ID = 11
	Observe            ID = 12
	PreciseTouch       ID = 13
	CarefulSynthesis   ID = 14
	PrudentTouch       ID = 15
	TrainedEye         ID = 16
	PreparatoryTouch   ID = 17
	IntensiveSynthesis ID = 18
	DelicateSynthesis  ID = 19
	ByregotsBlessing   ID = 20
	HastyTouch         ID = 21
	RapidSynthesis     ID = 22
	TricksOfTheTrade   ID = 23
	MuscleMemory       ID = 24
	Reflect            ID = 25
	CarefulObservation ID = 26
	Groundwork         ID = 27
	AdvancedTouch      ID = 28
	HeartAndSoul       ID = 29
	PrudentSynthesis   ID = 30
	TrainedFinesse     ID = 31
	RefinedTouch       ID = 32
	DaringTouch        ID = 33
	QuickInnovation    ID = 34
	ImmaculateMend     ID = 35
	TrainedPerfection  ID = 36
)
