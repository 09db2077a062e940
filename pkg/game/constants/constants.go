package constants

const (

	// MobAttackRange is the distance at which a mob attacks its target
	MobAttackRange float64 = 1.5
	// MobAggroRange is the distance at which a mob starts chasing a player
	MobAggroRange float64 = 12.0
	// MobAttackCooldown is the time between mob attacks
	MobAttackCooldown float64 = 1.0 // seconds
	// MobPatrolSpeedFactor scales mob speed while patrolling
	MobPatrolSpeedFactor float64 = 0.3
	// MobPatrolArriveDistance is the distance at which a patrol target counts as reached
	MobPatrolArriveDistance float64 = 0.5
	// MobPatrolTargetMinDistance is the minimum distance of a new patrol target
	MobPatrolTargetMinDistance float64 = 3.0
	// MobPatrolTargetRange is the random extra distance of a new patrol target
	MobPatrolTargetRange float64 = 5.0
	// MobPatrolWaitMin is the minimum wait after reaching a patrol target
	MobPatrolWaitMin float64 = 1.0 // seconds
	// MobPatrolWaitRange is the random extra wait after reaching a patrol target
	MobPatrolWaitRange float64 = 2.0 // seconds

	// MobSpawnMinDistance is the minimum spawn distance from the origin and from players
	MobSpawnMinDistance float64 = 20.0
	// MobSpawnMaxDistance is the maximum spawn distance from the origin
	MobSpawnMaxDistance float64 = 35.0
	// MobSpawnMaxAttempts bounds the retries when avoiding player positions
	MobSpawnMaxAttempts int = 10
	// MobRespawnDelay is the delay before a killed mob's replacement spawns
	MobRespawnDelay float64 = 3.0 // seconds

	// MobBaseHp is the hp of a depth-0 mob
	MobBaseHp int = 30
	// MobBaseDamage is the damage of a depth-0 mob
	MobBaseDamage int = 5
	// MobBaseXp is the xp reward of a depth-0 mob
	MobBaseXp int = 15
	// MobGrowthFactor scales mob stats per depth
	MobGrowthFactor float64 = 1.4
	// MobBaseSpeed is the speed of a depth-0 mob
	MobBaseSpeed float64 = 2.0
	// MobSpeedPerDepth is the speed gained per depth
	MobSpeedPerDepth float64 = 0.2
	// MobMaxSpeed caps mob speed regardless of depth
	MobMaxSpeed float64 = 6.0

	// MobsPerDepthBase is the base mob population of a depth
	MobsPerDepthBase int = 5
	// MobsPerDepthFactor is the extra mobs per depth level
	MobsPerDepthFactor float64 = 1.5
	// MobsPerDepthMax caps the mob population of a depth
	MobsPerDepthMax int = 25

	// TreeHp is the hit points of a tree
	TreeHp int = 50
	// RockHp is the hit points of a rock
	RockHp int = 80
	// ResourceRespawnDelayMs is the time before a destroyed resource respawns
	ResourceRespawnDelayMs int64 = 30000
	// ResourceWorldSize is the side of the square resources are placed in
	ResourceWorldSize float64 = 60.0
	// ResourceExclusionZone is the half-side of the spawn area kept clear of resources
	ResourceExclusionZone float64 = 12.0

	// PlayerBaseHp is the hp of a level-1 player
	PlayerBaseHp int = 100
	// PlayerHpPerLevel is the hp gained per level
	PlayerHpPerLevel int = 20
)
