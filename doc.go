// Package gridlock is a resource allocation puzzle engine. It simulates an
// operating system under pressure: a pool of cpu, memory, disk and printer
// units, a set of processes with fixed demands, and a player handing out
// units one grant at a time. Give every process what it needs before the
// move budget runs out, without painting the pool into a deadlock.
//
// The root package wires the engine together behind a small façade:
//
//	srv := gridlock.New(gridlock.WithSeed(42))
//	runtime := srv.Runtime()
//	ctx := runtime.NewContext(context.Background())
//	sess, err := runtime.StartLevel(ctx, 1)
//	granted, err := runtime.Allocate(ctx, sess.ID, "P1", resource.KindCPU, 1)
//
// Levels, detection and arbitration live in their own services under
// service/ and can be used independently of the façade.
package gridlock
