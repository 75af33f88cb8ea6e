package params

// Editor is the interactive edit surface. Each widget may mutate the value it
// is handed in place; there is no buffering between the editor and the target.
type Editor interface {
	DragVec3(name string, v *Vec3)
	ColorEdit3(name string, v *Vec3)
	Checkbox(name string, v *bool)
	DragFloat(name string, v *float64, step, min, max float64, format string)
}
