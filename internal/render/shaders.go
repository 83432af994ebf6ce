package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of direct lights the standard shader evaluates.
const MaxLights = 4

// Shadow map samplers. raylib binds material maps 1 and 2 to texture1 and texture2.
const (
	shadowSlotDirectional = 1
	shadowSlotSpot        = 2
)

// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
const vertexShader = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(transpose(inverse(matModel))) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`

// basicFS draws an unlit flat color.
const basicFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
out vec4 finalColor;
void main() {
  finalColor = colDiffuse;
}
`

// depthFS writes fragment depth packed into RGBA8 so a plain render texture can
// serve as a shadow map.
const depthFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
out vec4 finalColor;
vec4 packDepth(float depth) {
  vec4 enc = fract(vec4(1.0, 255.0, 65025.0, 16581375.0) * depth);
  enc -= enc.yzww * vec4(1.0/255.0, 1.0/255.0, 1.0/255.0, 0.0);
  return enc;
}
void main() {
  finalColor = packDepth(gl_FragCoord.z);
}
`

// standardFS is a metalness/roughness approximation: Lambert diffuse plus
// normalized Blinn-Phong specular, ambient, directional and spot lights with
// distance decay, cone falloff and filtered shadow maps.
const standardFS = `#version 330
#define MAX_LIGHTS 4
#define PI 3.14159265
struct Light {
  float kind;
  vec3 position;
  vec3 direction;
  vec3 color;
  float distance;
  float decay;
  float coneCos;
  float penumbraCos;
  float shadowSlot;
  float bias;
};
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambientColor;
uniform float roughness;
uniform float metalness;
uniform float receiveShadow;
uniform float lightCount;
uniform Light lights[MAX_LIGHTS];
uniform sampler2D texture1;
uniform sampler2D texture2;
uniform mat4 lightSpace1;
uniform mat4 lightSpace2;
uniform vec2 shadowTexel1;
uniform vec2 shadowTexel2;
uniform float shadowType;
out vec4 finalColor;

float unpackDepth(vec4 rgba) {
  return dot(rgba, vec4(1.0, 1.0/255.0, 1.0/65025.0, 1.0/16581375.0));
}

float sampleShadow(sampler2D map, vec2 uv, float depth) {
  return depth > unpackDepth(texture(map, uv)) ? 0.0 : 1.0;
}

float shadowFactor(sampler2D map, mat4 lightSpace, vec2 texel, float bias) {
  vec4 clip = lightSpace * vec4(fragPosition, 1.0);
  vec3 ndc = clip.xyz / clip.w;
  vec3 coord = ndc * 0.5 + 0.5;
  if (coord.x < 0.0 || coord.x > 1.0 || coord.y < 0.0 || coord.y > 1.0 || coord.z > 1.0) {
    return 1.0;
  }
  float depth = coord.z - bias;
  if (shadowType < 0.5) {
    return sampleShadow(map, coord.xy, depth);
  }
  float sum = 0.0;
  float weight = 0.0;
  int radius = shadowType < 1.5 ? 1 : 2;
  for (int x = -radius; x <= radius; x++) {
    for (int y = -radius; y <= radius; y++) {
      float w = shadowType < 1.5 ? 1.0 : float((radius + 1 - abs(x)) * (radius + 1 - abs(y)));
      sum += w * sampleShadow(map, coord.xy + vec2(x, y) * texel, depth);
      weight += w;
    }
  }
  return sum / weight;
}

float distanceAttenuation(float d, float cutoff, float decay) {
  float falloff = 1.0 / max(pow(d, decay), 0.01);
  if (cutoff > 0.0) {
    float r = clamp(1.0 - pow(d / cutoff, 4.0), 0.0, 1.0);
    falloff *= r * r;
  }
  return falloff;
}

void main() {
  vec3 albedo = pow(colDiffuse.rgb, vec3(2.2));
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 diffuseColor = albedo * (1.0 - metalness);
  vec3 specularColor = mix(vec3(0.04), albedo, metalness);
  float alpha = max(roughness * roughness, 0.02);
  float shininess = clamp(2.0 / (alpha * alpha) - 2.0, 1.0, 2048.0);

  vec3 color = ambientColor * diffuseColor / PI;
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (float(i) >= lightCount) {
      break;
    }
    Light light = lights[i];
    vec3 L = -light.direction;
    vec3 radiance = light.color;
    if (light.kind > 1.5) {
      vec3 toLight = light.position - fragPosition;
      float d = length(toLight);
      L = toLight / d;
      float cosAngle = dot(light.direction, -L);
      radiance *= smoothstep(light.coneCos, light.penumbraCos, cosAngle);
      radiance *= distanceAttenuation(d, light.distance, light.decay);
    }
    float NdotL = max(dot(N, L), 0.0);
    if (NdotL <= 0.0) {
      continue;
    }
    float shadow = 1.0;
    if (receiveShadow > 0.5) {
      if (light.shadowSlot > 0.5 && light.shadowSlot < 1.5) {
        shadow = shadowFactor(texture1, lightSpace1, shadowTexel1, light.bias);
      } else if (light.shadowSlot > 1.5) {
        shadow = shadowFactor(texture2, lightSpace2, shadowTexel2, light.bias);
      }
    }
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), shininess) * (shininess + 2.0) / (8.0 * PI);
    color += shadow * NdotL * radiance * (diffuseColor / PI + specularColor * spec);
  }
  finalColor = vec4(pow(color, vec3(1.0 / 2.2)), colDiffuse.a);
}
`

// program wraps a shader and caches uniform locations by name.
type program struct {
	shader rl.Shader
	locs   map[string]int32
}

func loadProgram(fs string) *program {
	return &program{
		shader: rl.LoadShaderFromMemory(vertexShader, fs),
		locs:   make(map[string]int32),
	}
}

func (p *program) loc(name string) int32 {
	if l, ok := p.locs[name]; ok {
		return l
	}
	l := rl.GetShaderLocation(p.shader, name)
	p.locs[name] = l
	return l
}

func (p *program) setFloat(name string, v float32) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValue(p.shader, l, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (p *program) setVec2(name string, v [2]float32) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValueV(p.shader, l, v[:], rl.ShaderUniformVec2, 1)
	}
}

func (p *program) setVec3(name string, v mgl32.Vec3) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValueV(p.shader, l, v[:], rl.ShaderUniformVec3, 1)
	}
}

func (p *program) setMatrix(name string, m mgl32.Mat4) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValueMatrix(p.shader, l, toMatrix(m))
	}
}

// setLights uploads the packed light list.
func (p *program) setLights(lights []lightUniform) {
	p.setFloat("lightCount", float32(len(lights)))
	for i, l := range lights {
		field := func(f string) string { return fmt.Sprintf("lights[%d].%s", i, f) }
		p.setFloat(field("kind"), float32(l.Kind))
		p.setVec3(field("position"), l.Position)
		p.setVec3(field("direction"), l.Direction)
		p.setVec3(field("color"), l.Color)
		p.setFloat(field("distance"), l.Distance)
		p.setFloat(field("decay"), l.Decay)
		p.setFloat(field("coneCos"), l.ConeCos)
		p.setFloat(field("penumbraCos"), l.PenumbraCos)
		p.setFloat(field("shadowSlot"), float32(l.ShadowSlot))
		p.setFloat(field("bias"), l.Bias)
	}
}

func (p *program) unload() {
	if rl.IsShaderValid(p.shader) {
		rl.UnloadShader(p.shader)
	}
}
