// Package simulation implements merit-order clearing of an electricity
// market. Renewable generation is dispatched first at zero marginal cost;
// the residual net demand is met by gas units in descending order of
// efficiency, and the bid of the last unit dispatched sets the hourly
// clearing price. Hours are independent: there is no unit commitment,
// storage or inter-hour coupling.
package simulation
