// Package factory provides a small generic registry used to build pluggable
// components from configuration: metrics sinks, delay model fitters and
// training-data sources. Each component is described by a type string and a
// map of raw settings. Factories decode the settings into typed structs and
// return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[prediction.Fitter]()
//	reg.Register("ridge", func(conf map[string]any) (prediction.Fitter, error) {
//	    var c struct{ Lambda float64 `json:"lambda"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return prediction.RidgeFitter{Lambda: c.Lambda}, nil
//	})
//	f, err := reg.Create(factory.ModuleConfig{Type: "ridge", Conf: map[string]any{"lambda": 0.5}})
package factory
