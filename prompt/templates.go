package prompt

// Template bodies are static narrative instructions. Image ordering rules
// stated here must agree with the orderings each provider actually sends;
// the structure image always precedes the style image for generate calls.

const generateDepth = `You are receiving a DEPTH MAP image:

DEPTH MAP:
- Black and white gradient representing depth
- White = closest objects, Black = farthest objects
- Shows spatial relationships and 3D structure

YOUR TASK:
1. Interpret the depth map to understand scene geometry
2. Generate a photorealistic 3D render based on this structure
3. Choose appropriate materials, colors, and lighting`

const generateDepthWithReference = `You are receiving TWO images with different purposes:

IMAGE 1 (Depth Map):
- Black and white gradient representing depth
- White = closest objects, Black = farthest objects
- Use for: scene composition, object placement, 3D structure

IMAGE 2 (Style Reference):
- Use ONLY for: color palette, material textures, lighting mood, surface details
- DO NOT copy: composition, object placement, camera angle

YOUR TASK:
1. Understand the 3D scene structure from the depth map (IMAGE 1)
2. Apply the visual style from the reference (IMAGE 2) to that structure
3. Create a photorealistic render combining depth map geometry with reference style`

const generateColor = `You are receiving a LOW-QUALITY 3D RENDER that needs a COMPLETE VISUAL OVERHAUL:

INPUT IMAGE (ROUGH DRAFT ONLY):
- Amateur 3D render with placeholder materials and basic lighting
- Use ONLY for general composition and object positions
- Colors are WRONG, materials are FAKE, lighting is FLAT

YOUR MISSION - TOTAL TRANSFORMATION:
1. REPLACE all materials with photorealistic equivalents:
   metal with proper reflections and wear, wood with visible grain,
   glass with refraction, fabric with weave and draping
2. REBUILD lighting from scratch: professional light sources, soft
   shadows, bounce light, ambient occlusion
3. REIMAGINE colors: input colors are just suggestions, add professional
   color grading with a harmonious palette
4. ADD depth and atmosphere: volumetric light, atmospheric perspective,
   background detail
5. ENHANCE with imperfections: scratches, dust, natural weathering

CRITICAL MINDSET:
- Think: this is a SKETCH, not the final image
- Be BOLD with changes - the input is intentionally low quality
- Aim for movie VFX quality or high-end product photography`

const generateColorWithReference = `You are receiving TWO images:

IMAGE 1 (3D Render - ONLY for composition/layout):
- Use EXCLUSIVELY for object positions and scene layout
- IGNORE its colors, materials, lighting, and quality
- Treat this as a rough sketch, not the final look

IMAGE 2 (Style Reference - YOUR MAIN GUIDE):
- This is your PRIMARY reference for EVERYTHING visual
- COPY AGGRESSIVELY: lighting setup, material types, color palette,
  texture quality, mood, atmosphere

YOUR TASK - AGGRESSIVE TRANSFORMATION:
1. Keep ONLY the composition/layout from IMAGE 1
2. COMPLETELY REPLACE materials, lighting, and colors with IMAGE 2's style
3. Match IMAGE 2's lighting direction, intensity, and color temperature
4. Use IMAGE 2's color palette - forget IMAGE 1's colors
5. Think: IMAGE 1 is a placeholder, IMAGE 2 is the goal

CRITICAL - DON'T BE CONSERVATIVE:
- If IMAGE 1 is flat but IMAGE 2 has depth, add DEPTH
- TRANSFORM aggressively, don't just improve IMAGE 1`

const editPlain = `You are editing an existing image.

SOURCE IMAGE:
- The image to be modified
- Preserve its composition, framing, and overall identity
- Change only what the instructions below require; leave everything else intact

Apply the requested changes seamlessly so the result still reads as the same photograph or render.`

const editWithMask = `You are editing an existing image with a region mask.

SOURCE IMAGE:
- The image to be modified

MASK IMAGE (sent after the source):
- White areas mark the ONLY region you may change
- Black areas must remain pixel-identical to the source

Apply the requested changes strictly inside the masked region and blend the
edges naturally with the untouched surroundings.`

const editWithReference = `You are receiving images in this order:

IMAGE 1 (Style Reference):
- Supplies color, material, and lighting cues for the edit
- DO NOT copy its composition or subject placement

IMAGE 2 (Source Image):
- The image to be modified
- Preserve its composition and geometry

Apply the requested changes to the source image, borrowing the reference's
visual treatment where the instructions call for it.`

const editWithMaskAndReference = `You are receiving images in this order:

IMAGE 1 (Style Reference):
- Supplies color, material, and lighting cues
- DO NOT copy its composition

IMAGE 2 (Source Image):
- The image to be modified

IMAGE 3 (Mask):
- White areas mark the ONLY region you may change
- Black areas must remain identical to the source

Apply the requested changes inside the masked region only, using the
reference for the visual treatment, and blend edges naturally.`

const editFinalize = `You are receiving a composited image that contains rough, pasted-in elements.

YOUR TASK - FINALIZE THE COMPOSITE:
1. Integrate every pasted element so it belongs in the scene: match
   perspective, scale, and grounding
2. Unify lighting across the whole image: consistent light direction,
   shadows cast by inserted objects, matching color temperature
3. Blend edges and remove any visible seams, halos, or hard cutouts
4. Harmonize color grading and grain so no element looks out of place

Do not add, remove, or move objects. Only make what is already there look
like it was photographed together.`
