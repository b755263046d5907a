// Package engine wires the rigid-body world, the drag controller, the
// out-of-bounds rescue monitor, the render sync, and the session timer into
// one façade. The presentation layer owns the schedule: it forwards pointer
// events as they arrive, calls Step once per tick, and reads a published
// Frame once per display frame. The engine never schedules itself and never
// mutates anything the presentation layer hands back.
package engine
