package sparse

// scatterOffset keeps the first block clear of the image edge.
const scatterOffset = 2

// Scatter maps a dense axis coordinate to its image coordinate, leaving a one
// pixel gap after every 4-, 16- and 64-cell boundary crossed. It is strictly
// increasing in k.
func Scatter(k int) int {
	return k + k/OuterSpan + k/InnerSpan + k/DenseSpan + scatterOffset
}

// ImageSize returns the side length of an image large enough to hold every
// scattered coordinate of an n-cell axis.
func ImageSize(n int) int {
	return n + n/DenseSpan + n/InnerSpan + n/OuterSpan
}
