package phys2d

import (
	"fmt"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// pendulumTranscript runs a motorized pendulum for a fixed number of steps
// and records the body state each step.
func pendulumTranscript(steps int) string {
	ground := makeStaticBody(0.0, 0.0)
	bob := makeDynamicDisc(2.0, 0.0, 0.25, 5.0)

	def := MakeRevoluteJointDef()
	def.Initialize(ground, bob, MakeVec2(0.0, 0.0))
	def.EnableMotor = true
	def.MotorSpeed = 1.5
	def.MaxMotorTorque = 20.0
	def.EnableLimit = true
	def.LowerAngle = -2.0
	def.UpperAngle = 2.0
	joint := NewRevoluteJoint(&def)

	driver := newJointDriver(MakeVec2(0.0, -10.0), ground, bob)

	transcript := ""
	for i := 0; i < steps; i++ {
		driver.advance(joint)

		p := bob.GetPosition()
		transcript += fmt.Sprintf("%d: %.15f %.15f %.15f %.15f\n",
			i, p.X, p.Y, bob.GetAngle(), joint.GetJointAngle())
	}
	return transcript
}

// Identical inputs must produce bit-identical trajectories; the solver has
// no hidden state besides the accumulated impulses, which are rebuilt the
// same way on every run.
func TestPendulumTranscriptDeterminism(t *testing.T) {
	first := pendulumTranscript(180)
	second := pendulumTranscript(180)

	if first != second {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(first),
			B:        difflib.SplitLines(second),
			FromFile: "FirstRun",
			ToFile:   "SecondRun",
			Context:  0,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		t.Fatalf("transcripts diverged:\n%s", text)
	}
}
