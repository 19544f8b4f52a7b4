// Package core ties the engine together: configuration, logging, frame
// timing and the Game handle that hosts drive once per frame.
package core
