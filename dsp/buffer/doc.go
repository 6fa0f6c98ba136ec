// Package buffer provides a planar multi-channel sample buffer.
//
// Processors iterate a [Buffer] channel by channel; each channel is a plain
// slice, so single-channel DSP code keeps accepting raw []F. Frames can be
// shrunk and regrown inside the allocated capacity without allocating, which
// lets hosts hand variable block sizes to a processor prepared for a maximum.
package buffer
