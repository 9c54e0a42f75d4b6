package input

type trigger struct {
	system System
	state  State
	kind   Kind
}

type action func(*Machine, Key) Result

var allStates = []State{Idle, AwaitingFirstAxis, AwaitingSecondAxis, AccumulatingFixedAxes}

// rules is the transition table. A key with no matching rule is ignored.
var rules = []struct {
	system System
	states []State
	kind   Kind
	do     action
}{
	{ThreeKey, allStates, KindDigit, (*Machine).setDepth},
	{ThreeKey, allStates, KindEscape, (*Machine).escape},
	{ThreeKey, allStates, KindSelector, (*Machine).selectSide},
	{ThreeKey, allStates, KindRotate, (*Machine).selectWhole},
	{ThreeKey, []State{AwaitingFirstAxis}, KindAxis, (*Machine).firstAxis},
	{ThreeKey, []State{AwaitingSecondAxis}, KindAxis, (*Machine).secondAxis},

	{FixedKey, allStates, KindDigit, (*Machine).setDepth},
	{FixedKey, allStates, KindEscape, (*Machine).escape},
	{FixedKey, allStates, KindSelector, (*Machine).selectFixed},
	{FixedKey, allStates, KindFlipSelector, (*Machine).selectFixed},
	{FixedKey, allStates, KindRotate, (*Machine).markWhole},
	{FixedKey, []State{AccumulatingFixedAxes}, KindAxis, (*Machine).fixedAxis},
}

var transitions = buildTransitions()

func buildTransitions() map[trigger]action {
	out := make(map[trigger]action)
	for _, r := range rules {
		for _, st := range r.states {
			out[trigger{r.system, st, r.kind}] = r.do
		}
	}
	return out
}
