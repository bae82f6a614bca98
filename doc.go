// Package willow2d adds 2D sprite rendering to a host 3D engine built on
// [Ebitengine].
//
// Every object is an [Entity] composed of components. An entity that carries
// a [MeshRenderer2D] is a 2D sprite: a [Scene] routes it into its 2D
// [Registry] instead of the host's 3D collection, draws it with the
// Standard2D shader under an orthographic projection, and updates its
// components once per rendered frame. A [FixedDriver] additionally ticks
// every [FixedUpdater] component at a fixed period on its own goroutine.
//
// # Quick start
//
//	engine, err := willow2d.NewEngine()
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene, err := willow2d.NewScene(engine)
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine.SetScene(scene)
//
//	engine.Post(func(ctx context.Context) {
//		mesh, _ := engine.NewSquareMesh(ctx, willow2d.NewMaterial2D(willow2d.ColorWhite, sheet))
//		renderer, _ := willow2d.NewMeshRenderer2D(mesh)
//
//		block := willow2d.NewEntity("block")
//		block.Transform.SetPosition2D(600, 500)
//		block.Transform.SetScale(200, 200, 1)
//		_ = block.AddComponent(renderer)
//		_ = scene.Add(block)
//	})
//
//	willow2d.Run(engine, willow2d.RunConfig{Title: "sprites", Width: 1080, Height: 720})
//
// # Render thread
//
// The goroutine that calls [Engine.Frame] (Ebitengine's Draw) is the render
// thread. GPU resources are created only with the render-thread context that
// every frame passes to [Engine.Post] and [Engine.Call] callbacks; other
// contexts fail with [ErrThreadAffinity].
//
// # Sprite animation
//
// A [SpriteAnimator] holds named [SpriteAnimation] sequences of sprite-sheet
// frame identifiers and advances the current one each frame, writing the
// frame to the entity. Animation sets can also be described in YAML and
// hot-reloaded through the engine's [AnimationLibrary].
//
// [Ebitengine]: https://ebitengine.org
package willow2d
