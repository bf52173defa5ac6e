// Package cv binds the capture loop to OpenCV through gocv: camera and video
// file sources, Haar/LBP cascade classifiers and the highgui display window.
package cv
