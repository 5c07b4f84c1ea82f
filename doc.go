// Package ganglion predicts the temporal response of a retinal ganglion cell to
// an electrical pulse train.
//
// The response is computed by a fixed five-stage cascade:
//
//  1. a pulse train is synthesised at the selected stimulation frequency;
//  2. delivered charge is integrated and filtered by the fast adaptation kernel G2
//     (reported for inspection only);
//  3. the same charge is filtered by a slow gamma kernel with time constant Tau2k,
//     and the result is subtracted from the drive;
//  4. the corrected drive is filtered by G1, half-wave rectified, normalised, and
//     scaled by a logistic function of its own peak;
//  5. the result is smoothed by G3.
//
// All kernels must be sampled at the stimulus sampling period. Frequency indices
// are 0-based and select the same entry of Stimulus.FreqList and Stimulus.Amp.
package ganglion
