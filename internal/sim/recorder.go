package sim

import "github.com/san-kum/linkage/internal/dynamo"

// Recorder snapshots the state every Every ticks.
type Recorder struct {
	every int
	traj  dynamo.Trajectory
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{every: every}
}

func (r *Recorder) OnTick(st *dynamo.State) {
	if st.Tick%uint64(r.every) != 0 {
		return
	}
	r.traj.Append(st.Snapshot())
}

func (r *Recorder) Trajectory() *dynamo.Trajectory { return &r.traj }

func (r *Recorder) Reset() { r.traj = dynamo.Trajectory{} }
