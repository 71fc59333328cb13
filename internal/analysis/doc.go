// Package analysis runs families of ignition simulations.
//
//   - [TemperatureSweep]: ignition delay as a function of initial
//     temperature, one independent simulator per point
//   - [CompareSteps]: the same case at several fixed step sizes, to check
//     that a step size is small enough
//
// # Ignition Delay Curve
//
// The sweep runs its points on a bounded pool of workers. Each simulator is
// owned by exactly one worker, so no state is shared between runs:
//
//	pts, err := analysis.TemperatureSweep(ctx, cfg, 900, 1300, 9, 4)
//	for _, p := range pts {
//	    if p.Ignited {
//	        fmt.Println(p.Temp, p.IgnitionDelay)
//	    }
//	}
package analysis
