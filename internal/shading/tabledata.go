package shading

// Static factor data transcribed from NEN 5060. Values vary by month
// because the sun's path changes seasonally: winter months punish
// south-facing windows hardest since the low sun is easily obstructed.
// Treat as process-wide constants; nothing mutates these maps after init.

// minimalFsh is table 17.4: Fsh;obst for minimal obstruction, keyed by
// month then orientation.
var minimalFsh = map[int]map[Orientation]float64{
	1:  {South: 0.23, East: 0.49, Southeast: 0.92, North: 0.48, Northeast: 1.0, West: 1.0, Northwest: 0.85},
	2:  {South: 0.91, East: 0.83, Southeast: 0.79, North: 0.81, Northeast: 1.0, West: 0.96, Northwest: 0.85},
	3:  {South: 1.0, East: 0.93, Southeast: 0.82, North: 0.87, Northeast: 1.0, West: 0.97, Northwest: 0.89},
	4:  {South: 1.0, East: 0.92, Southeast: 0.91, North: 0.95, Northeast: 0.99, West: 0.97, Northwest: 0.82},
	5:  {South: 1.0, East: 0.99, Southeast: 0.95, North: 1.0, Northeast: 0.97, West: 0.88, Northwest: 0.88},
	6:  {South: 1.0, East: 1.0, Southeast: 0.9, North: 1.0, Northeast: 0.97, West: 0.91, Northwest: 0.93},
	7:  {South: 1.0, East: 1.0, Southeast: 0.93, North: 0.99, Northeast: 0.97, West: 0.91, Northwest: 0.92},
	8:  {South: 1.0, East: 0.99, Southeast: 0.94, North: 0.98, Northeast: 0.98, West: 0.98, Northwest: 0.89},
	9:  {South: 1.0, East: 0.91, Southeast: 0.87, North: 0.92, Northeast: 1.0, West: 0.97, Northwest: 0.85},
	10: {South: 0.97, East: 0.88, Southeast: 0.84, North: 0.86, Northeast: 1.0, West: 0.96, Northwest: 0.83},
	11: {South: 0.61, East: 0.71, Southeast: 0.92, North: 0.7, Northeast: 1.0, West: 0.98, Northwest: 0.9},
	12: {South: 0.19, East: 0.58, Southeast: 0.86, North: 0.4, Northeast: 1.0, West: 1.0, Northwest: 0.87},
}

// obstructedFsh is table 17.7: Fsh;obst for significant obstruction, keyed
// by month then orientation, banded by ho category {<0.5, 0.5-1.0, >=1.0}.
var obstructedFsh = map[int]map[Orientation]bandedFsh{
	1: {
		South:     {0.19, 0.19, 0.19},
		East:      {0.45, 0.24, 0.24},
		Southeast: {0.8, 0.55, 0.55},
		North:     {0.44, 0.25, 0.25},
		Northeast: {1.0, 1.0, 1.0},
		West:      {1.0, 1.0, 1.0},
		Northwest: {0.75, 0.49, 0.49},
	},
	2: {
		South:     {0.6, 0.3, 0.3},
		East:      {0.66, 0.51, 0.38},
		Southeast: {0.79, 0.68, 0.54},
		North:     {0.59, 0.44, 0.35},
		Northeast: {1.0, 1.0, 1.0},
		West:      {0.94, 0.91, 0.91},
		Northwest: {0.85, 0.72, 0.61},
	},
	3: {
		South:     {0.95, 0.43, 0.35},
		East:      {0.83, 0.53, 0.41},
		Southeast: {0.75, 0.7, 0.53},
		North:     {0.79, 0.48, 0.38},
		Northeast: {1.0, 1.0, 1.0},
		West:      {0.93, 0.85, 0.82},
		Northwest: {0.8, 0.73, 0.57},
	},
	4: {
		South:     {1.0, 0.76, 0.36},
		East:      {0.84, 0.56, 0.38},
		Southeast: {0.82, 0.66, 0.5},
		North:     {0.89, 0.58, 0.39},
		Northeast: {0.97, 0.97, 0.97},
		West:      {0.97, 0.88, 0.75},
		Northwest: {0.74, 0.54, 0.43},
	},
	5: {
		South:     {1.0, 1.0, 0.46},
		East:      {0.95, 0.75, 0.44},
		Southeast: {0.89, 0.71, 0.54},
		North:     {0.99, 0.82, 0.47},
		Northeast: {0.96, 0.91, 0.91},
		West:      {0.89, 0.88, 0.74},
		Northwest: {0.83, 0.62, 0.47},
	},
	6: {
		South:     {1.0, 1.0, 0.56},
		East:      {0.99, 0.85, 0.49},
		Southeast: {0.89, 0.71, 0.53},
		North:     {0.99, 0.88, 0.53},
		Northeast: {0.94, 0.86, 0.84},
		West:      {0.81, 0.79, 0.66},
		Northwest: {0.86, 0.66, 0.49},
	},
	7: {
		South:     {1.0, 1.0, 0.56},
		East:      {0.99, 0.82, 0.43},
		Southeast: {0.87, 0.69, 0.54},
		North:     {0.99, 0.83, 0.51},
		Northeast: {0.95, 0.9, 0.89},
		West:      {0.85, 0.84, 0.71},
		Northwest: {0.88, 0.71, 0.55},
	},
	8: {
		South:     {1.0, 0.95, 0.42},
		East:      {0.91, 0.67, 0.4},
		Southeast: {0.9, 0.72, 0.57},
		North:     {0.95, 0.74, 0.46},
		Northeast: {0.98, 0.96, 0.96},
		West:      {0.96, 0.92, 0.87},
		Northwest: {0.8, 0.77, 0.66},
	},
	9: {
		South:     {0.99, 0.55, 0.34},
		East:      {0.84, 0.54, 0.39},
		Southeast: {0.77, 0.67, 0.51},
		North:     {0.84, 0.5, 0.38},
		Northeast: {1.0, 1.0, 1.0},
		West:      {0.95, 0.87, 0.8},
		Northwest: {0.77, 0.66, 0.53},
	},
	10: {
		South:     {0.82, 0.3, 0.28},
		East:      {0.74, 0.42, 0.35},
		Southeast: {0.75, 0.71, 0.52},
		North:     {0.7, 0.5, 0.33},
		Northeast: {1.0, 1.0, 1.0},
		West:      {0.95, 0.9, 0.91},
		Northwest: {0.76, 0.75, 0.57},
	},
	11: {
		South:     {0.24, 0.24, 0.24},
		East:      {0.46, 0.34, 0.31},
		Southeast: {0.89, 0.6, 0.58},
		North:     {0.56, 0.38, 0.3},
		Northeast: {1.0, 1.0, 1.0},
		West:      {0.98, 0.98, 0.98},
		Northwest: {0.87, 0.74, 0.62},
	},
	12: {
		South:     {0.19, 0.19, 0.19},
		East:      {0.54, 0.26, 0.26},
		Southeast: {0.71, 0.55, 0.55},
		North:     {0.38, 0.25, 0.25},
		Northeast: {1.0, 1.0, 1.0},
		West:      {1.0, 1.0, 1.0},
		Northwest: {0.79, 0.61, 0.61},
	},
}
