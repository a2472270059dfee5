// Package sim is the local harness that drives a team of exploration cores.
//
// A World holds the ground truth floor plan, one simulated Robot per spawn
// point and one explore.Explorer deciding for each of them. Every tick:
//
//  1. messages posted during the previous tick are delivered
//  2. every explorer runs one update, in robot id order
//  3. every robot moves at most one tile
//  4. on SLAM ticks, every robot re-observes the ground truth around it
//
// The run stops when every explorer is done or the tick budget is spent.
package sim
