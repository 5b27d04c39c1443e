package box2d

import (
	"math"
	"sort"
)

type B2PairCallback func(proxyA *B2FixtureProxy, proxyB *B2FixtureProxy)

/// Return false to stop the query.
type B2PairQueryCallback func(proxy *B2FixtureProxy) bool

/// Return the new max fraction for the ray. Zero terminates the cast and a
/// negative value leaves the ray untouched.
type B2PairRayCastCallback func(input B2RayCastInput, proxy *B2FixtureProxy) float64

/// The pair finder produces candidate fixture pairs from fattened AABBs. The
/// world only needs this contract, so a tree or sweep-and-prune can replace
/// the brute force finder below.
type B2PairFinder interface {
	CreateProxy(aabb B2AABB, proxy *B2FixtureProxy) int
	DestroyProxy(proxyId int)
	MoveProxy(proxyId int, aabb B2AABB, displacement B2Vec2)
	TouchProxy(proxyId int)

	GetFatAABB(proxyId int) B2AABB
	TestOverlap(proxyIdA int, proxyIdB int) bool
	GetProxyCount() int

	/// Report every new overlapping pair involving a moved proxy, once.
	UpdatePairs(callback B2PairCallback)

	Query(callback B2PairQueryCallback, aabb B2AABB)
	RayCast(callback B2PairRayCastCallback, input B2RayCastInput)
	ShiftOrigin(newOrigin B2Vec2)
}

type B2Pair struct {
	ProxyIdA int
	ProxyIdB int
}

const E_nullProxy = -1

type PairByLessThan []B2Pair

func (a PairByLessThan) Len() int      { return len(a) }
func (a PairByLessThan) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a PairByLessThan) Less(i, j int) bool {
	return B2PairLessThan(a[i], a[j])
}

/// This is used to sort pairs.
func B2PairLessThan(pair1 B2Pair, pair2 B2Pair) bool {
	if pair1.ProxyIdA < pair2.ProxyIdA {
		return true
	}

	if pair1.ProxyIdA == pair2.ProxyIdA {
		return pair1.ProxyIdB < pair2.ProxyIdB
	}

	return false
}

type b2PairFinderProxy struct {
	fatAABB B2AABB
	proxy   *B2FixtureProxy
	next    int // free list
}

/// B2BruteForcePairFinder tests every moved proxy against every other proxy.
/// Proxies are visited in id order so pair reporting is deterministic.
type B2BruteForcePairFinder struct {
	M_proxies  []b2PairFinderProxy
	M_freeList int

	M_proxyCount int

	M_moveBuffer []int
	M_pairBuffer []B2Pair
}

func MakeB2BruteForcePairFinder() B2BruteForcePairFinder {
	return B2BruteForcePairFinder{
		M_freeList:   E_nullProxy,
		M_moveBuffer: make([]int, 0, 16),
		M_pairBuffer: make([]B2Pair, 0, 16),
	}
}

func NewB2BruteForcePairFinder() *B2BruteForcePairFinder {
	res := MakeB2BruteForcePairFinder()
	return &res
}

func (bp B2BruteForcePairFinder) isLive(proxyId int) bool {
	return 0 <= proxyId && proxyId < len(bp.M_proxies) && bp.M_proxies[proxyId].proxy != nil
}

func (bp B2BruteForcePairFinder) GetUserData(proxyId int) *B2FixtureProxy {
	B2Assert(bp.isLive(proxyId))
	return bp.M_proxies[proxyId].proxy
}

func (bp B2BruteForcePairFinder) TestOverlap(proxyIdA int, proxyIdB int) bool {
	return B2TestOverlapBoundingBoxes(bp.GetFatAABB(proxyIdA), bp.GetFatAABB(proxyIdB))
}

func (bp B2BruteForcePairFinder) GetFatAABB(proxyId int) B2AABB {
	B2Assert(bp.isLive(proxyId))
	return bp.M_proxies[proxyId].fatAABB
}

func (bp B2BruteForcePairFinder) GetProxyCount() int {
	return bp.M_proxyCount
}

func (bp *B2BruteForcePairFinder) CreateProxy(aabb B2AABB, proxy *B2FixtureProxy) int {
	B2Assert(proxy != nil)

	var proxyId int
	if bp.M_freeList != E_nullProxy {
		proxyId = bp.M_freeList
		bp.M_freeList = bp.M_proxies[proxyId].next
	} else {
		proxyId = len(bp.M_proxies)
		bp.M_proxies = append(bp.M_proxies, b2PairFinderProxy{})
	}

	// Fatten the aabb.
	bp.M_proxies[proxyId] = b2PairFinderProxy{
		fatAABB: aabb.Extend(B2_aabbExtension),
		proxy:   proxy,
		next:    E_nullProxy,
	}

	bp.M_proxyCount++
	bp.BufferMove(proxyId)
	return proxyId
}

func (bp *B2BruteForcePairFinder) DestroyProxy(proxyId int) {
	B2Assert(bp.isLive(proxyId))

	bp.UnBufferMove(proxyId)
	bp.M_proxies[proxyId] = b2PairFinderProxy{next: bp.M_freeList}
	bp.M_freeList = proxyId
	bp.M_proxyCount--
}

// MoveProxy keeps the fat AABB while the tight one stays inside it.
// Otherwise the AABB is re-fattened and extended along the displacement.
func (bp *B2BruteForcePairFinder) MoveProxy(proxyId int, aabb B2AABB, displacement B2Vec2) {
	B2Assert(bp.isLive(proxyId))

	p := &bp.M_proxies[proxyId]
	if p.fatAABB.Contains(aabb) {
		return
	}

	b := aabb.Extend(B2_aabbExtension)

	// Predict AABB displacement.
	d := B2Vec2MulScalar(B2_aabbMultiplier, displacement)

	if d.X < 0.0 {
		b.LowerBound.X += d.X
	} else {
		b.UpperBound.X += d.X
	}

	if d.Y < 0.0 {
		b.LowerBound.Y += d.Y
	} else {
		b.UpperBound.Y += d.Y
	}

	p.fatAABB = b
	bp.BufferMove(proxyId)
}

func (bp *B2BruteForcePairFinder) TouchProxy(proxyId int) {
	bp.BufferMove(proxyId)
}

func (bp *B2BruteForcePairFinder) BufferMove(proxyId int) {
	bp.M_moveBuffer = append(bp.M_moveBuffer, proxyId)
}

func (bp *B2BruteForcePairFinder) UnBufferMove(proxyId int) {
	for i := range bp.M_moveBuffer {
		if bp.M_moveBuffer[i] == proxyId {
			bp.M_moveBuffer[i] = E_nullProxy
		}
	}
}

func (bp *B2BruteForcePairFinder) UpdatePairs(addPairCallback B2PairCallback) {
	// Reset pair buffer
	bp.M_pairBuffer = bp.M_pairBuffer[:0]

	// Test all moving proxies against everything else.
	for _, queryProxyId := range bp.M_moveBuffer {
		if queryProxyId == E_nullProxy {
			continue
		}

		fatAABB := bp.M_proxies[queryProxyId].fatAABB

		for proxyId := range bp.M_proxies {
			// A proxy cannot form a pair with itself.
			if proxyId == queryProxyId || bp.M_proxies[proxyId].proxy == nil {
				continue
			}

			if !B2TestOverlapBoundingBoxes(fatAABB, bp.M_proxies[proxyId].fatAABB) {
				continue
			}

			bp.M_pairBuffer = append(bp.M_pairBuffer, B2Pair{
				ProxyIdA: min(proxyId, queryProxyId),
				ProxyIdB: max(proxyId, queryProxyId),
			})
		}
	}

	// Reset move buffer
	bp.M_moveBuffer = bp.M_moveBuffer[:0]

	// Sort the pair buffer to expose duplicates.
	sort.Sort(PairByLessThan(bp.M_pairBuffer))

	// Send the pairs back to the client.
	i := 0
	for i < len(bp.M_pairBuffer) {
		primaryPair := bp.M_pairBuffer[i]
		addPairCallback(bp.M_proxies[primaryPair.ProxyIdA].proxy, bp.M_proxies[primaryPair.ProxyIdB].proxy)
		i++

		// Skip any duplicate pairs.
		for i < len(bp.M_pairBuffer) && bp.M_pairBuffer[i] == primaryPair {
			i++
		}
	}
}

func (bp *B2BruteForcePairFinder) Query(callback B2PairQueryCallback, aabb B2AABB) {
	for proxyId := range bp.M_proxies {
		p := bp.M_proxies[proxyId]
		if p.proxy == nil || !B2TestOverlapBoundingBoxes(p.fatAABB, aabb) {
			continue
		}

		if !callback(p.proxy) {
			return
		}
	}
}

func (bp *B2BruteForcePairFinder) RayCast(callback B2PairRayCastCallback, input B2RayCastInput) {
	maxFraction := input.MaxFraction

	for proxyId := range bp.M_proxies {
		p := bp.M_proxies[proxyId]
		if p.proxy == nil {
			continue
		}

		subInput := MakeB2RayCastInput(input.P1, input.P2, maxFraction)
		if !b2SegmentOverlapsAABB(subInput, p.fatAABB) {
			continue
		}

		value := callback(subInput, p.proxy)
		if value == 0.0 {
			// The client has terminated the ray cast.
			return
		}

		if value > 0.0 {
			// Update segment bounding box.
			maxFraction = value
		}
	}
}

func (bp *B2BruteForcePairFinder) ShiftOrigin(newOrigin B2Vec2) {
	for i := range bp.M_proxies {
		if bp.M_proxies[i].proxy == nil {
			continue
		}

		bp.M_proxies[i].fatAABB.LowerBound.OperatorMinusInplace(newOrigin)
		bp.M_proxies[i].fatAABB.UpperBound.OperatorMinusInplace(newOrigin)
	}
}

// Separating axis for segment (Gino, p80).
// |dot(v, p1 - c)| > dot(|v|, h)
func b2SegmentOverlapsAABB(input B2RayCastInput, aabb B2AABB) bool {
	p1 := input.P1
	p2 := input.P2
	r := B2Vec2Sub(p2, p1)
	if r.LengthSquared() == 0.0 {
		return aabb.Contains(MakeB2AABB(p1, p1))
	}
	r.Normalize()

	// v is perpendicular to the segment.
	v := B2Vec2CrossScalarVector(1.0, r)
	abs_v := B2Vec2Abs(v)

	t := B2Vec2Add(p1, B2Vec2MulScalar(input.MaxFraction, B2Vec2Sub(p2, p1)))
	segmentAABB := MakeB2AABB(B2Vec2Min(p1, t), B2Vec2Max(p1, t))
	if !B2TestOverlapBoundingBoxes(segmentAABB, aabb) {
		return false
	}

	c := aabb.GetCenter()
	h := aabb.GetExtents()
	separation := math.Abs(B2Vec2Dot(v, B2Vec2Sub(p1, c))) - B2Vec2Dot(abs_v, h)
	return separation <= 0.0
}
