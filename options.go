package primetower

// TowerOption configures a Tower during creation.
//
// Example:
//
//	tower := primetower.CreatePrimeTower(scene, storage, primetower.RaftLayerCount(3),
//	    primetower.WithWorkers(4),
//	    primetower.WithStartLocations(12),
//	)
type TowerOption func(*towerOptions)

type towerOptions struct {
	strategy       Strategy
	polisher       Polisher
	workers        int
	startLocations int
}

func defaultOptions() towerOptions {
	return towerOptions{
		startLocations: defaultStartLocations,
	}
}

// WithStrategy replaces the strategy selected by the prime_tower_mode
// setting.
func WithStrategy(s Strategy) TowerOption {
	return func(o *towerOptions) {
		o.strategy = s
	}
}

// WithPolisher replaces the usage-plan polishing step. By default the
// strategy polishes the plan itself when it implements Polisher.
func WithPolisher(p Polisher) TowerOption {
	return func(o *towerOptions) {
		o.polisher = p
	}
}

// WithWorkers sets the number of goroutines used to generate layers in
// parallel. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) TowerOption {
	return func(o *towerOptions) {
		o.workers = n
	}
}

// WithStartLocations sets how many wipe anchors are spread around the tower.
// Values below one keep the default of 21.
func WithStartLocations(n int) TowerOption {
	return func(o *towerOptions) {
		if n > 0 {
			o.startLocations = n
		}
	}
}
